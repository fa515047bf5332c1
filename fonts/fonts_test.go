package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/textfit/layout"
)

func TestLoadBuiltin(t *testing.T) {
	data, err := Load("builtin:goregular", "")
	require.NoError(t, err)
	assert.Equal(t, goregular.TTF, data)

	data, err = Load("builtin:GoMono", "")
	require.NoError(t, err)
	assert.Equal(t, gomono.TTF, data)

	_, err = Load("builtin:comic", "")
	assert.Error(t, err)
}

func TestLoadRelativePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "body.ttf"), []byte("ttf"), 0o644))

	data, err := Load("body.ttf", dir)
	require.NoError(t, err)
	assert.Equal(t, []byte("ttf"), data)

	_, err = Load("missing.ttf", dir)
	assert.Error(t, err)
}

func TestLoadResourceFallback(t *testing.T) {
	res := layout.FontResource{Name: "Body", Src: "nope/missing.ttf", Fallback: "builtin:gobold"}
	data, err := LoadResource(res, t.TempDir())
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	res.Fallback = ""
	_, err = LoadResource(res, t.TempDir())
	assert.ErrorContains(t, err, "Body")
}

func TestBuiltinsSorted(t *testing.T) {
	names := Builtins()
	assert.Len(t, names, 8)
	assert.Equal(t, "gobold", names[0])
}
