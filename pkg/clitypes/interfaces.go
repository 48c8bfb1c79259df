// Package clitypes defines the data model shared by the autocli derivation engine.
//
// The engine turns a described function into a command schema and arranges schemas
// into a command tree. This package holds the types that flow between those stages
// and out to the command-line collaborator.
//
// # Package Organization
//
// ## Parameter Types (param_types.go)
//
//   - ParamKind: Positional, Flag, ValueOption, ChoiceOption
//   - ParameterSpec: one CLI-exposed parameter with help text and defaults
//
// ## Enumeration Types (enum_types.go)
//
//   - Enum: implemented by types whose values form a closed set
//   - Choice: a (label, member) pair advertised for a choice option
//   - EnumTranslation: label to member lookup used at invocation time
//
// ## Schema Types (schema_types.go)
//
//   - CommandSchema: the immutable description of one invokable command
package clitypes
