package main

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Env is the environment a command runs against.
type Env string

// Known environments.
const (
	EnvDevelopment Env = "development"
	EnvProduction  Env = "production"
)

// Members lists the environments in the order they are offered.
func (Env) Members() []any { return []any{EnvDevelopment, EnvProduction} }

type myFunctionParams struct {
	Path    string `cli:"_path"`
	Name    string
	Age     int
	IsTest  bool
	Env     Env
	Verbose bool
}

const myFunctionDoc = `
    This is my test function for generating CLI entrypoint.

    Args:
        _path: path input
        name: Name of the user.
        age: Age of the user.
        is_test: whether it is test or not.
        env: Environment where to run the CLI.
    `

func myFunction(w io.Writer) func(context.Context, myFunctionParams) error {
	return func(_ context.Context, p myFunctionParams) error {
		fmt.Fprintf(w, "path=%s name=%s age=%d is_test=%t env=%s verbose=%t\n",
			p.Path, p.Name, p.Age, p.IsTest, p.Env, p.Verbose)
		return nil
	}
}

type styleParams struct {
	Name  string
	Times int `default:"1"`
}

const numpyDoc = `Greet someone, documented in Numpy style.

Parameters
----------
name : str
    Who to greet.
times : int
    How many greetings to print.

Returns
-------
None
`

const restDoc = `Greet someone, documented in reStructuredText style.

:param name: Who to greet.
:param times: How many greetings to print.
:returns: Nothing.
`

type greetParams struct {
	Name  string `cli:"_name"`
	Shout bool
}

// greet prints a greeting. Its help text is read from this comment.
//
// Args:
// _name: Who to greet.
// shout: Print the greeting in upper case.
func greet(w io.Writer) func(context.Context, greetParams) error {
	return func(_ context.Context, p greetParams) error {
		msg := "Hello, " + p.Name + "!"
		if p.Shout {
			msg = strings.ToUpper(msg)
		}
		fmt.Fprintln(w, msg)
		return nil
	}
}

func repeatGreeting(w io.Writer) func(context.Context, styleParams) error {
	return func(_ context.Context, p styleParams) error {
		for range p.Times {
			fmt.Fprintf(w, "Hello, %s!\n", p.Name)
		}
		return nil
	}
}

type targetParams struct {
	Target string `cli:"_target"`
	DryRun bool
}

func announce(w io.Writer, action string) func(context.Context, targetParams) error {
	return func(_ context.Context, p targetParams) error {
		if p.DryRun {
			fmt.Fprintf(w, "would %s %s\n", action, p.Target)
			return nil
		}
		fmt.Fprintf(w, "%s %s\n", action, p.Target)
		return nil
	}
}
