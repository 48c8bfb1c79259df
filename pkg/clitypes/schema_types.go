package clitypes

// CommandSchema is the fully derived description of one invokable command.
// Params are in the function's declared parameter order. A schema is built once
// and must not be modified afterwards; WithName returns a renamed copy.
type CommandSchema struct {
	Name         string
	Description  string
	Params       []ParameterSpec
	Translations map[string]EnumTranslation // Keyed by parameter name, enumeration types only
}

// Param returns the parameter called name.
func (s *CommandSchema) Param(name string) (ParameterSpec, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

// Positionals returns the positional parameters in declared order.
func (s *CommandSchema) Positionals() []ParameterSpec {
	var positionals []ParameterSpec
	for _, p := range s.Params {
		if p.Kind == Positional {
			positionals = append(positionals, p)
		}
	}
	return positionals
}

// Options returns the named (non-positional) parameters in declared order.
func (s *CommandSchema) Options() []ParameterSpec {
	var options []ParameterSpec
	for _, p := range s.Params {
		if p.Kind != Positional {
			options = append(options, p)
		}
	}
	return options
}

// Summary returns the first line of the description.
func (s *CommandSchema) Summary() string {
	for i, r := range s.Description {
		if r == '\n' {
			return s.Description[:i]
		}
	}
	return s.Description
}

// WithName returns a copy of the schema under a different command name.
// Params and translations are shared, which is safe because neither is mutated.
func (s *CommandSchema) WithName(name string) *CommandSchema {
	renamed := *s
	renamed.Name = name
	return &renamed
}
