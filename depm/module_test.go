package depm

import (
	"bitc/common"
	"bitc/report"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	report.InitReporter(report.LogLevelSilent)
}

func TestParseModule(t *testing.T) {
	mod, err := parseModule("proj", []byte(`
[module]
name = "shapes"
source-root = "src"
entry = "app.main"
extension = "bit.json"
log-level = "warn"
time-format = "%H:%M"
`))
	require.NoError(t, err)

	assert.Equal(t, "shapes", mod.Name)
	assert.Equal(t, []string{"app", "main"}, mod.EntryPath())
	assert.Equal(t, ".bit.json", mod.Extension)
	assert.Equal(t, report.LogLevelWarn, mod.LogLevel)
	assert.Equal(t, "%H:%M", mod.TimeFormat)
	assert.Equal(t, filepath.Join(mod.ModuleRoot, "src"), mod.SourceRoot)
}

func TestParseModuleDefaults(t *testing.T) {
	mod, err := parseModule("proj", []byte("[module]\nname = \"m\"\nentry = \"main\"\n"))
	require.NoError(t, err)

	assert.Equal(t, common.SrcFileExt, mod.Extension)
	assert.Equal(t, common.DefaultTimeFormat, mod.TimeFormat)
	assert.Equal(t, -1, mod.LogLevel)
	assert.Equal(t, mod.ModuleRoot, mod.SourceRoot)
}

func TestParseModuleErrors(t *testing.T) {
	tests := []struct {
		name, src string
	}{
		{"missing table", `name = "m"`},
		{"missing name", "[module]\nentry = \"main\"\n"},
		{"bad name", "[module]\nname = \"1m\"\nentry = \"main\"\n"},
		{"missing entry", "[module]\nname = \"m\"\n"},
		{"bad entry", "[module]\nname = \"m\"\nentry = \"a..b\"\n"},
		{"bad log level", "[module]\nname = \"m\"\nentry = \"main\"\nlog-level = \"loud\"\n"},
		{"bad toml", "[module"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseModule("proj", []byte(test.src))
			assert.Error(t, err)
		})
	}
}

func TestFilePackageResolver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, common.ModuleFileName),
		[]byte("[module]\nname = \"m\"\nentry = \"main\"\n"),
		0o644,
	))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "util"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "util", "strings.json"),
		[]byte(`{"imports": [], "defs": [{"kind": "val", "name": "x", "value": {"kind": "int", "value": "1"}}]}`),
		0o644,
	))

	mod, err := LoadModule(dir)
	require.NoError(t, err)

	resolver := NewFilePackageResolver(mod)
	prog, reprPath, err := resolver.ResolvePackage([]string{"util", "strings"})
	require.NoError(t, err)
	assert.Equal(t, resolver.PackageFile([]string{"util", "strings"}), reprPath)
	assert.Len(t, prog.Defs, 1)

	_, _, err = resolver.ResolvePackage([]string{"util", "missing"})
	assert.Error(t, err)
}
