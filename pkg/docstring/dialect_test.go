package docstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const googleDoc = `
    This is my simple entry point of CLI.

    Args:
        _path: Positional argument representing the target file path.
        name: Name of this operation.
        verbose: Verbose output will be shown if set.
    `

const numpyDoc = `
    This is my simple entry point of CLI.

    Parameters
    ----------
    _path: str
        Positional argument representing the target file path.
    name: str
        Name of this operation.
    verbose: bool
        Verbose output will be shown if set.
    `

const restDoc = `
    This is my simple entry point of CLI.

    :param _path: Positional argument representing the target file path.
    :param name: Name of this operation.
    :param verbose: Verbose output will be shown if set.
    `

var exampleParams = []string{"_path", "name", "verbose"}

var exampleHelp = map[string]string{
	"_path":   "Positional argument representing the target file path.",
	"name":    "Name of this operation.",
	"verbose": "Verbose output will be shown if set.",
}

func TestParseGoogle(t *testing.T) {
	t.Run("one line", func(t *testing.T) {
		doc := ParseGoogle(" This is oneline docstring. ")
		assert.Equal(t, Doc{Description: "This is oneline docstring."}, doc)
	})

	t.Run("simple", func(t *testing.T) {
		doc := ParseGoogle(`
        This is a simple docstring.

        Args:
            foo: Description of foo.
            bar: Description of bar.
        `)
		assert.Equal(t, Doc{
			Description: "This is a simple docstring.",
			Args: []Arg{
				{Name: "foo", Description: "Description of foo."},
				{Name: "bar", Description: "Description of bar."},
			},
		}, doc)
	})

	t.Run("args block ends at first blank line", func(t *testing.T) {
		doc := ParseGoogle("Summary.\n\nArgs:\n    foo: Foo.\n\n    bar: Bar.\n")
		require.Len(t, doc.Args, 1)
		assert.Equal(t, "foo", doc.Args[0].Name)
	})
}

func TestParseNumpy(t *testing.T) {
	doc := ParseNumpy(numpyDoc)
	assert.Equal(t, "This is my simple entry point of CLI.", doc.Description)
	assert.Equal(t, exampleHelp, doc.Help())

	t.Run("type annotation is discarded", func(t *testing.T) {
		doc := ParseNumpy("Parameters\n----------\ncount : int\n    How many.\n")
		assert.Equal(t, []Arg{{Name: "count", Description: "How many."}}, doc.Args)
	})

	t.Run("subtitle between header and rule is ignored", func(t *testing.T) {
		doc := ParseNumpy("Summary.\nParameters\n(all optional)\n---\nx:\n    The x.\n")
		assert.Equal(t, "Summary.", doc.Description)
		assert.Equal(t, []Arg{{Name: "x", Description: "The x."}}, doc.Args)
	})

	t.Run("no parameters header", func(t *testing.T) {
		doc := ParseNumpy(googleDoc)
		assert.Empty(t, doc.Args)
	})
}

func TestParseRestructuredText(t *testing.T) {
	doc := ParseRestructuredText(restDoc)
	assert.Equal(t, "This is my simple entry point of CLI.", doc.Description)
	assert.Equal(t, exampleHelp, doc.Help())

	t.Run("continuation lines join the current param", func(t *testing.T) {
		doc := ParseRestructuredText(":param path: where the file\n    is writ-\n    ten.\n")
		assert.Equal(t, []Arg{{Name: "path", Description: "where the file is written."}}, doc.Args)
	})

	t.Run("typed param directive", func(t *testing.T) {
		doc := ParseRestructuredText(":param str name: The name.")
		assert.Equal(t, []Arg{{Name: "name", Description: "The name."}}, doc.Args)
	})

	t.Run("non-param directive stops the scan", func(t *testing.T) {
		doc := ParseRestructuredText("Summary.\n\n:param a: A help.\n:returns: something.\n:param b: B help.\n")
		assert.Equal(t, "Summary.", doc.Description)
		assert.Equal(t, []Arg{{Name: "a", Description: "A help."}}, doc.Args)
	})

	t.Run("type directive stops the scan", func(t *testing.T) {
		doc := ParseRestructuredText(":param a: A help.\n:type a: int\n:param b: B help.\n")
		assert.Equal(t, []Arg{{Name: "a", Description: "A help."}}, doc.Args)
	})
}

func TestParse_EachDialectYieldsDocumentedNames(t *testing.T) {
	tests := []struct {
		dialect Dialect
		text    string
	}{
		{Google, googleDoc},
		{Numpy, numpyDoc},
		{RestructuredText, restDoc},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.String(), func(t *testing.T) {
			doc := Parse(tt.dialect, tt.text)
			assert.Len(t, doc.Help(), len(exampleParams))
			assert.Equal(t, len(exampleParams), doc.MatchedArgCount(exampleParams))
		})
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		dialect Dialect
	}{
		{"google", googleDoc, Google},
		{"numpy", numpyDoc, Numpy},
		{"restructured text", restDoc, RestructuredText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialect, doc := Select(tt.text, exampleParams)
			assert.Equal(t, tt.dialect, dialect)
			assert.Equal(t, "This is my simple entry point of CLI.", doc.Description)
			assert.Equal(t, exampleHelp, doc.Help())
		})
	}
}

func TestSelect_EmptyDocumentation(t *testing.T) {
	for _, text := range []string{"", "   \n\t\n"} {
		dialect, doc := Select(text, exampleParams)
		assert.Equal(t, Google, dialect)
		assert.Equal(t, Doc{}, doc)
	}
}

func TestSelect_TieGoesToEarlierDialect(t *testing.T) {
	text := "Summary.\n\nArgs:\n    foo: Google foo.\n\n:param foo: Rest foo.\n"

	dialect, doc := Select(text, []string{"foo"})
	assert.Equal(t, Google, dialect)
	assert.Equal(t, "Google foo.", doc.Help()["foo"])
}

func TestSelect_HigherMatchCountWins(t *testing.T) {
	text := "Summary.\n\nArgs:\n    foo: Google foo.\n\n:param foo: Rest foo.\n:param bar: Rest bar.\n"

	dialect, doc := Select(text, []string{"foo", "bar"})
	assert.Equal(t, RestructuredText, dialect)
	assert.Equal(t, "Rest bar.", doc.Help()["bar"])
}

func TestSelect_ZeroMatchesStillSucceeds(t *testing.T) {
	dialect, doc := Select(googleDoc, []string{"unrelated"})
	assert.Equal(t, Google, dialect)
	assert.Equal(t, "This is my simple entry point of CLI.", doc.Description)
	assert.Equal(t, 0, doc.MatchedArgCount([]string{"unrelated"}))
}

func TestSelect_Deterministic(t *testing.T) {
	for _, text := range []string{googleDoc, numpyDoc, restDoc} {
		firstDialect, firstDoc := Select(text, exampleParams)
		secondDialect, secondDoc := Select(text, exampleParams)
		assert.Equal(t, firstDialect, secondDialect)
		assert.Equal(t, firstDoc, secondDoc)
	}
}

func TestDialect_String(t *testing.T) {
	assert.Equal(t, "google", Google.String())
	assert.Equal(t, "numpy", Numpy.String())
	assert.Equal(t, "restructured-text", RestructuredText.String())
	assert.Equal(t, "Dialect(7)", Dialect(7).String())
}
