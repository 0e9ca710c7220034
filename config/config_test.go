package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mgomes/escopo/escopo"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[language]
block = "BEGIN"
end = "END"

[output]
locale = "en"
line-numbers = true
dir = "out"

[log]
verbosity = 2
path = "escopo.log"
`)

	s, err := Load(dir)
	require.NoError(t, err)

	absDir, err := filepath.Abs(dir)
	require.NoError(t, err)
	require.Equal(t, absDir, s.Dir)
	require.Equal(t, "BEGIN", s.Language.Block)
	require.True(t, s.Output.LineNumbers)
	require.False(t, s.Output.ReportUnrecognized)
	require.Equal(t, 2, s.Log.Verbosity)
	require.Equal(t, filepath.Join(absDir, "out"), s.OutputDir())

	cfg := s.Interpreter()
	require.Equal(t, "en", cfg.Locale)
	require.Equal(t, escopo.Keywords{Block: "BEGIN", End: "END"}, cfg.Keywords)

	in, err := escopo.NewInterpreter(cfg, nil)
	require.NoError(t, err)
	require.Equal(t, "NUMERO", in.Keywords().Number)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[output]\nlocal = \"en\"\n")

	_, err := Load(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "output.local")
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[language]\nblock = \"FIM\"\n")

	_, err := Load(dir)
	require.ErrorIs(t, err, escopo.ErrInvalidKeyword)

	writeConfig(t, dir, "[output]\nlocale = \"ja\"\n")
	_, err = Load(dir)
	require.ErrorIs(t, err, escopo.ErrUnknownLocale)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[output]\nreport-unrecognized = true\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	s, err := FindAndLoad(nested)
	require.NoError(t, err)
	require.NotNil(t, s)
	require.True(t, s.Output.ReportUnrecognized)
}

func TestFindAndLoadWithoutFile(t *testing.T) {
	s, err := FindAndLoad(t.TempDir())
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[output]\ncolor = true\ndir = \"/tmp/x\"\n"), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	require.True(t, s.Output.Color)
	require.Equal(t, "/tmp/x", s.OutputDir())
}

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	require.Empty(t, s.OutputDir())
}
