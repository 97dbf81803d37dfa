package depm

import (
	"bitc/common"
	"bitc/report"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

// BitModule represents a Bit module: a directory of packages with a module
// file at its root.
type BitModule struct {
	// The name of the module.
	Name string

	// The absolute path to the directory containing the module file.
	ModuleRoot string

	// The directory relative to which package paths are resolved.
	SourceRoot string

	// The package path of the entry package: eg. `app.main`.
	Entry string

	// The file extension of source files.
	Extension string

	// The log level selected by the module.  This is -1 if the module does
	// not select one.
	LogLevel int

	// The strftime pattern used to display timestamps.
	TimeFormat string
}

// EntryPath returns the entry package path split into its components.
func (bm *BitModule) EntryPath() []string {
	return strings.Split(bm.Entry, ".")
}

// tomlModuleFile represents the module file as it is encoded in TOML
type tomlModuleFile struct {
	Module *tomlModule `toml:"module"`
}

// tomlModule represents a Bit module as it is encoded in TOML
type tomlModule struct {
	Name       string `toml:"name"`
	SourceRoot string `toml:"source-root,omitempty"`
	Entry      string `toml:"entry"`
	Extension  string `toml:"extension,omitempty"`
	LogLevel   string `toml:"log-level,omitempty"`
	TimeFormat string `toml:"time-format,omitempty"`
	Version    string `toml:"bit-version"`
}

// LoadModule loads and validates the module whose module file is in the
// directory at path.
func LoadModule(path string) (*BitModule, error) {
	buff, err := os.ReadFile(filepath.Join(path, common.ModuleFileName))
	if err != nil {
		return nil, err
	}

	return parseModule(path, buff)
}

// parseModule parses the contents of a module file found in the directory at
// path.
func parseModule(path string, buff []byte) (*BitModule, error) {
	tmf := &tomlModuleFile{}
	if err := toml.Unmarshal(buff, tmf); err != nil {
		return nil, err
	}

	if tmf.Module == nil {
		return nil, fmt.Errorf("module file at %s is missing the `[module]` table", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	// bitMod is the final, extracted module that is returned
	bitMod := &BitModule{
		ModuleRoot: absPath,
		LogLevel:   -1,
	}

	if err := validateModule(bitMod, tmf.Module); err != nil {
		return nil, err
	}

	bitMod.Name = tmf.Module.Name
	bitMod.Entry = tmf.Module.Entry

	// source root defaults to the module root
	bitMod.SourceRoot = filepath.Join(absPath, tmf.Module.SourceRoot)

	if tmf.Module.Extension == "" {
		bitMod.Extension = common.SrcFileExt
	} else if !strings.HasPrefix(tmf.Module.Extension, ".") {
		bitMod.Extension = "." + tmf.Module.Extension
	} else {
		bitMod.Extension = tmf.Module.Extension
	}

	if tmf.Module.TimeFormat == "" {
		bitMod.TimeFormat = common.DefaultTimeFormat
	} else {
		bitMod.TimeFormat = tmf.Module.TimeFormat
	}

	if tmf.Module.LogLevel != "" {
		bitMod.LogLevel = report.LogLevels[tmf.Module.LogLevel]
	}

	return bitMod, nil
}

// validateModule checks that the top level module contents are valid
func validateModule(bmod *BitModule, mod *tomlModule) error {
	if mod.Name == "" {
		return fmt.Errorf("missing module name for module at %s", bmod.ModuleRoot)
	}

	if !IsValidIdentifier(mod.Name) {
		return errors.New("module name must be a valid identifier")
	}

	if mod.Entry == "" {
		return fmt.Errorf("module `%s` must specify an entry package", mod.Name)
	}

	for _, comp := range strings.Split(mod.Entry, ".") {
		if !IsValidIdentifier(comp) {
			return fmt.Errorf("`%s` is not a valid package path", mod.Entry)
		}
	}

	if mod.LogLevel != "" {
		if _, ok := report.LogLevels[mod.LogLevel]; !ok {
			return fmt.Errorf("`%s` is not a valid log level", mod.LogLevel)
		}
	}

	if mod.Version != "" && mod.Version != common.BitVersion {
		report.ReportWarning(
			"module",
			"version of module `%s` (v%s) does not match current bitc version (v%s)",
			mod.Name, mod.Version, common.BitVersion,
		)
	}

	return nil
}

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier (module name, package path component, etc.)
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
