package testutils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsolateEnv(t *testing.T) {
	t.Setenv("AUTOCLI_THEME", "plain")
	t.Run("isolated", func(t *testing.T) {
		IsolateEnv(t)
		_, set := os.LookupEnv("AUTOCLI_THEME")
		assert.False(t, set)
	})
	assert.Equal(t, "plain", os.Getenv("AUTOCLI_THEME"))
}

func TestCaptureBuffer(t *testing.T) {
	var buf CaptureBuffer
	assert.Equal(t, []string{}, buf.Lines())

	_, _ = buf.Write([]byte("one\ntwo\n"))
	assert.Equal(t, []string{"one", "two"}, buf.Lines())

	buf.Reset()
	assert.Empty(t, buf.String())
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, t.TempDir(), "config.yaml", "theme: plain\n")
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "theme: plain\n", string(data))
}
