// Package main is an example program built with autocli. It exposes a handful
// of documented functions as subcommands.
package main

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"autocli/internal/logger"
	"autocli/internal/version"
	"autocli/pkg/autocli"
	"autocli/pkg/cmdtree"
	"autocli/pkg/docstring"
	"autocli/pkg/schema"
)

//go:embed commands.go
var commandsSource []byte

const description = `Example program whose commands are derived from Go functions and their documentation.`

func buildTree(w io.Writer) (cmdtree.Map, error) {
	greetDoc, err := docstring.ExtractGoDoc("commands.go", commandsSource, "greet")
	if err != nil {
		return nil, err
	}

	mine, err := schema.Define("my_function", myFunctionDoc, myFunction(w))
	if err != nil {
		return nil, err
	}
	greeter, err := schema.Define("greet", greetDoc, greet(w))
	if err != nil {
		return nil, err
	}
	numpy, err := schema.Define("numpy_style", numpyDoc, repeatGreeting(w))
	if err != nil {
		return nil, err
	}
	rest, err := schema.Define("rest_style", restDoc, repeatGreeting(w))
	if err != nil {
		return nil, err
	}
	run, err := schema.Define("run", "Run a target.", announce(w, "run"))
	if err != nil {
		return nil, err
	}
	build, err := schema.Define("build", "Build a target.", announce(w, "build"))
	if err != nil {
		return nil, err
	}
	deploy, err := schema.Define("deploy", "Deploy a target.", announce(w, "deploy"))
	if err != nil {
		return nil, err
	}

	return cmdtree.Map{
		{Name: "my-function", Value: mine},
		{Name: "greet", Value: greeter},
		{Name: "docs", Value: []*schema.Func{numpy, rest}},
		{Name: "tasks", Value: []*schema.Func{run, build}},
		{Name: "deploy", Value: cmdtree.Map{
			{Name: "staging", Value: deploy},
			{Name: "production", Value: deploy},
		}},
	}, nil
}

func main() {
	if err := version.ValidateVersion(); err != nil {
		logger.Warn("Unexpected build version", "error", err)
	}

	tree, err := buildTree(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error defining commands: %v\n", err)
		os.Exit(1)
	}

	autocli.Run(tree,
		autocli.WithName("autocli-demo"),
		autocli.WithDescription(description),
		autocli.WithVersion(version.GetFormattedVersion()),
		autocli.WithLoggingFlags(),
	)
}
