package schema

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"autocli/pkg/clitypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env string

const (
	envDev  env = "development"
	envProd env = "production"
)

func (env) Members() []any { return []any{envDev, envProd} }

type choice string

const (
	choice1 choice = "choice_1"
	choice2 choice = "choice_2"
)

func (choice) Members() []any { return []any{choice1, choice2} }

type emptyEnum int

func (emptyEnum) Members() []any { return nil }

// pointerEnum declares Members on the pointer receiver only.
type pointerEnum string

func (*pointerEnum) Members() []any { return []any{pointerEnum("a")} }

const myFunctionDoc = `
    This is my test function for generating CLI entrypoint.

    Args:
        _path: path input
        name: Name of the user.
        age: Age of the user.
        is_test: whether it is test or not.
        env: Environment where to run the CLI.
    `

// recorder captures the arguments of the last call.
type recorder struct {
	args map[string]any
}

func (r *recorder) call(_ context.Context, args map[string]any) error {
	r.args = args
	return nil
}

func myFunction(rec *recorder) *Func {
	return &Func{
		Name: "my_function",
		Doc:  myFunctionDoc,
		Params: []Param{
			Required[string]("_path"),
			Required[string]("name"),
			Required[int]("age"),
			Required[bool]("is_test"),
			Required[env]("env"),
			Optional("verbose", false),
		},
		Call: rec.call,
	}
}

func TestBuild_ClassifiesInDeclarationOrder(t *testing.T) {
	cmd, err := Build(myFunction(&recorder{}))
	require.NoError(t, err)

	schema := cmd.Schema()
	assert.Equal(t, "my_function", schema.Name)
	assert.Equal(t, "This is my test function for generating CLI entrypoint.", schema.Description)

	expected := []struct {
		name     string
		kind     clitypes.ParamKind
		required bool
		help     string
	}{
		{"_path", clitypes.Positional, true, "path input"},
		{"name", clitypes.ValueOption, true, "Name of the user."},
		{"age", clitypes.ValueOption, true, "Age of the user."},
		{"is_test", clitypes.Flag, false, "whether it is test or not."},
		{"env", clitypes.ChoiceOption, true, "Environment where to run the CLI."},
		{"verbose", clitypes.Flag, false, ""},
	}

	require.Len(t, schema.Params, len(expected))
	for i, want := range expected {
		got := schema.Params[i]
		assert.Equal(t, want.name, got.Name)
		assert.Equal(t, want.kind, got.Kind, want.name)
		assert.Equal(t, want.required, got.Required, want.name)
		assert.Equal(t, want.help, got.Help, want.name)
	}
}

func TestBuild_RequiredAndDefaultAreExclusive(t *testing.T) {
	cmd, err := Build(myFunction(&recorder{}))
	require.NoError(t, err)

	for _, p := range cmd.Schema().Options() {
		assert.NotEqual(t, p.Required, p.HasDefault, p.Name)
	}
	for _, p := range cmd.Schema().Positionals() {
		assert.True(t, p.Required)
		assert.False(t, p.HasDefault)
	}
}

func TestBuild_FlagWithoutDefaultIsFalse(t *testing.T) {
	cmd, err := Build(&Func{
		Name:   "f",
		Params: []Param{Required[bool]("dry_run")},
		Call:   (&recorder{}).call,
	})
	require.NoError(t, err)

	p, ok := cmd.Schema().Param("dry_run")
	require.True(t, ok)
	assert.Equal(t, clitypes.Flag, p.Kind)
	assert.False(t, p.Required)
	assert.True(t, p.HasDefault)
	assert.Equal(t, false, p.Default)
}

func TestBuild_FlagKeepsDeclaredDefault(t *testing.T) {
	cmd, err := Build(&Func{
		Name:   "f",
		Params: []Param{Optional("color", true)},
		Call:   (&recorder{}).call,
	})
	require.NoError(t, err)

	p, _ := cmd.Schema().Param("color")
	assert.Equal(t, true, p.Default)
}

func TestBuild_EnumChoicesAndTranslation(t *testing.T) {
	cmd, err := Build(&Func{
		Name:   "f",
		Params: []Param{Required[choice]("pick")},
		Call:   (&recorder{}).call,
	})
	require.NoError(t, err)

	p, ok := cmd.Schema().Param("pick")
	require.True(t, ok)
	assert.Equal(t, clitypes.ChoiceOption, p.Kind)
	assert.Equal(t, []clitypes.Choice{
		{Label: "choice_1", Value: choice1},
		{Label: "choice_2", Value: choice2},
	}, p.Choices)
	assert.Equal(t, "choice_1|choice_2", p.TypeName())

	table, ok := cmd.Schema().Translations["pick"]
	require.True(t, ok)
	member, err := table.Translate("choice_1")
	require.NoError(t, err)
	assert.Equal(t, choice1, member)
	member, err = table.Translate("choice_2")
	require.NoError(t, err)
	assert.Equal(t, choice2, member)
}

func TestBuild_EnumDefault(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"member", envProd},
		{"label", "production"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Build(&Func{
				Name:   "f",
				Params: []Param{{Name: "env", Type: reflect.TypeFor[env](), Default: tt.value, HasDefault: true}},
				Call:   (&recorder{}).call,
			})
			require.NoError(t, err)

			p, _ := cmd.Schema().Param("env")
			assert.False(t, p.Required)
			assert.Equal(t, envProd, p.Default)
		})
	}
}

func TestBuild_ValueOptionDefaultIsConverted(t *testing.T) {
	cmd, err := Build(&Func{
		Name:   "f",
		Params: []Param{{Name: "retries", Type: reflect.TypeFor[int64](), Default: 3, HasDefault: true}},
		Call:   (&recorder{}).call,
	})
	require.NoError(t, err)

	p, _ := cmd.Schema().Param("retries")
	assert.Equal(t, int64(3), p.Default)
}

func TestBuild_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name     string
		params   []Param
		expected error
		contains []string
	}{
		{
			name:     "unsupported type",
			params:   []Param{Required[float64]("ratio")},
			expected: ErrUnsupportedType,
			contains: []string{"ratio", "float64", "broken"},
		},
		{
			name:     "positional with default",
			params:   []Param{Optional("_path", "here")},
			expected: ErrPositionalDefault,
			contains: []string{"_path"},
		},
		{
			name:     "positional of unsupported type",
			params:   []Param{Required[bool]("_switch")},
			expected: ErrUnsupportedType,
		},
		{
			name:     "duplicate names",
			params:   []Param{Required[string]("name"), Required[int]("name")},
			expected: ErrDuplicateName,
		},
		{
			name:     "default of the wrong kind",
			params:   []Param{{Name: "count", Type: reflect.TypeFor[int](), Default: "three", HasDefault: true}},
			expected: ErrInvalidDefault,
		},
		{
			name:     "default overflowing the type",
			params:   []Param{{Name: "small", Type: reflect.TypeFor[int8](), Default: 1000, HasDefault: true}},
			expected: ErrInvalidDefault,
		},
		{
			name:     "default outside the enumeration",
			params:   []Param{{Name: "env", Type: reflect.TypeFor[env](), Default: "staging", HasDefault: true}},
			expected: ErrInvalidDefault,
		},
		{
			name:     "enumeration without members",
			params:   []Param{Required[emptyEnum]("nothing")},
			expected: ErrEmptyEnum,
		},
		{
			name:     "enumeration with pointer receiver",
			params:   []Param{Required[pointerEnum]("near_miss")},
			expected: ErrUnsupportedType,
			contains: []string{"near_miss", "value receiver"},
		},
		{
			name:     "positional enumeration without members",
			params:   []Param{Required[emptyEnum]("_nothing")},
			expected: ErrEmptyEnum,
		},
		{
			name:     "missing type",
			params:   []Param{{Name: "untyped"}},
			expected: ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(&Func{Name: "broken", Params: tt.params, Call: (&recorder{}).call})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), err.Error())
			for _, s := range tt.contains {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestBuild_InvalidFunc(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, ErrInvalidFunc)

	_, err = Build(&Func{Call: (&recorder{}).call})
	assert.ErrorIs(t, err, ErrInvalidFunc)

	_, err = Build(&Func{Name: "f"})
	assert.ErrorIs(t, err, ErrInvalidFunc)
}

func TestBuild_DocumentationDegradesSilently(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no documentation", ""},
		{"documentation without args", "Just a summary."},
		{"args for other names", "Summary.\n\nArgs:\n    other: Not ours.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Build(&Func{
				Name:   "f",
				Doc:    tt.doc,
				Params: []Param{Required[string]("name")},
				Call:   (&recorder{}).call,
			})
			require.NoError(t, err)
			p, _ := cmd.Schema().Param("name")
			assert.Empty(t, p.Help)
		})
	}
}

func TestBuild_SelectsDialectPerFunction(t *testing.T) {
	numpy := "Summary.\n\nParameters\n----------\nname: str\n    The name.\n"
	rest := "Summary.\n\n:param name: The name.\n"

	for _, doc := range []string{numpy, rest} {
		cmd, err := Build(&Func{
			Name:   "f",
			Doc:    doc,
			Params: []Param{Required[string]("name")},
			Call:   (&recorder{}).call,
		})
		require.NoError(t, err)
		p, _ := cmd.Schema().Param("name")
		assert.Equal(t, "The name.", p.Help)
		assert.Equal(t, "Summary.", cmd.Schema().Description)
	}
}

func TestCommand_Invoke(t *testing.T) {
	rec := &recorder{}
	cmd, err := Build(myFunction(rec))
	require.NoError(t, err)

	err = cmd.Invoke(context.Background(), map[string]any{
		"_path":   "path",
		"name":    "taro",
		"age":     10,
		"is_test": true,
		"env":     "development",
	})
	require.NoError(t, err)

	assert.Equal(t, "path", rec.args["_path"])
	assert.Equal(t, "taro", rec.args["name"])
	assert.Equal(t, 10, rec.args["age"])
	assert.Equal(t, true, rec.args["is_test"])
	assert.Equal(t, envDev, rec.args["env"])
	assert.IsType(t, envDev, rec.args["env"])
	assert.Equal(t, false, rec.args["verbose"])
}

func TestCommand_InvokeDeliversEnumMember(t *testing.T) {
	rec := &recorder{}
	cmd, err := Build(&Func{Name: "f", Params: []Param{Required[choice]("pick")}, Call: rec.call})
	require.NoError(t, err)

	require.NoError(t, cmd.Invoke(context.Background(), map[string]any{"pick": "choice_1"}))
	assert.Equal(t, choice1, rec.args["pick"])

	require.NoError(t, cmd.Invoke(context.Background(), map[string]any{"pick": choice2}))
	assert.Equal(t, choice2, rec.args["pick"])
}

func TestBuild_PositionalEnum(t *testing.T) {
	rec := &recorder{}
	cmd, err := Build(&Func{Name: "deploy", Params: []Param{Required[env]("_target")}, Call: rec.call})
	require.NoError(t, err)

	spec, ok := cmd.Schema().Param("_target")
	require.True(t, ok)
	assert.Equal(t, clitypes.Positional, spec.Kind)
	assert.True(t, spec.Required)
	assert.Equal(t, []string{"development", "production"}, spec.Labels())
	assert.Equal(t, "development|production", spec.TypeName())
	require.Contains(t, cmd.Schema().Translations, "_target")

	require.NoError(t, cmd.Invoke(context.Background(), map[string]any{"_target": "production"}))
	assert.Equal(t, envProd, rec.args["_target"])

	err = cmd.Invoke(context.Background(), map[string]any{"_target": "not-a-member"})
	assert.ErrorIs(t, err, clitypes.ErrUnknownChoice)
}

func TestCommand_InvokeErrors(t *testing.T) {
	cmd, err := Build(myFunction(&recorder{}))
	require.NoError(t, err)

	t.Run("label never advertised", func(t *testing.T) {
		err := cmd.Invoke(context.Background(), map[string]any{
			"_path": "p", "name": "n", "age": 1, "env": "staging",
		})
		assert.ErrorIs(t, err, clitypes.ErrUnknownChoice)
	})

	t.Run("missing required value", func(t *testing.T) {
		err := cmd.Invoke(context.Background(), map[string]any{"_path": "p"})
		assert.ErrorIs(t, err, ErrMissingValue)
	})

	t.Run("unknown parameter", func(t *testing.T) {
		err := cmd.Invoke(context.Background(), map[string]any{"bogus": 1})
		assert.Error(t, err)
	})
}

func TestCommand_InvokePropagatesFailure(t *testing.T) {
	boom := errors.New("boom")
	cmd, err := Build(&Func{
		Name: "f",
		Call: func(context.Context, map[string]any) error { return boom },
	})
	require.NoError(t, err)

	assert.ErrorIs(t, cmd.Invoke(context.Background(), nil), boom)
}

func TestCommand_Rename(t *testing.T) {
	rec := &recorder{}
	cmd, err := Build(&Func{Name: "f1", Params: []Param{Required[string]("name")}, Call: rec.call})
	require.NoError(t, err)

	renamed := cmd.Rename("run")
	assert.Equal(t, "run", renamed.Name())
	assert.Equal(t, "f1", cmd.Name())
	assert.Equal(t, cmd.Schema().Params, renamed.Schema().Params)

	require.NoError(t, renamed.Invoke(context.Background(), map[string]any{"name": "x"}))
	assert.Equal(t, "x", rec.args["name"])
}

func TestCommand_InvocationsAreSerialized(t *testing.T) {
	var active, peak int32
	cmd, err := Build(&Func{
		Name: "f",
		Call: func(context.Context, map[string]any) error {
			n := atomic.AddInt32(&active, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
			return nil
		},
	})
	require.NoError(t, err)
	renamed := cmd.Rename("g")

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := cmd
			if i%2 == 0 {
				target = renamed
			}
			assert.NoError(t, target.Invoke(context.Background(), nil))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
}
