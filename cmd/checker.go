package cmd

import (
	"bitc/common"
	"bitc/depm"
	"bitc/report"
	"bitc/sem"
	"bitc/walk"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Checker represents the global state of a single run of the checker.
type Checker struct {
	// The absolute path to the module directory or package file being checked.
	rootAbsPath string

	// The log level selected on the command line or -1 if none was selected.
	logLevel int

	// The resolver used to locate the entry package and its imports.
	resolver *depm.FilePackageResolver

	// The package path of the entry package.
	entry []string

	// The resolved program.  This is nil until checking succeeds.
	prog *sem.Program
}

// NewChecker creates a new checker for the module directory or package file
// at rootRelPath.
func NewChecker(rootRelPath string, logLevel int) *Checker {
	rootAbsPath, err := filepath.Abs(rootRelPath)
	if err != nil {
		report.ReportFatal("error calculating absolute path: %s", err.Error())
	}

	return &Checker{rootAbsPath: rootAbsPath, logLevel: logLevel}
}

// Check loads and resolves the entry package along with everything it
// imports.  It returns whether the program is free of errors.
func (c *Checker) Check() bool {
	finfo, err := os.Stat(c.rootAbsPath)
	if err != nil {
		report.ReportFatal("unable to check `%s`: %s", c.rootAbsPath, err.Error())
	}

	var target, timeFormat string
	if finfo.IsDir() {
		mod, err := depm.LoadModule(c.rootAbsPath)
		if err != nil {
			report.ReportStdError(filepath.Join(c.rootAbsPath, common.ModuleFileName), err)
			return false
		}

		// the command line log level takes precedence over that of the module
		if c.logLevel == -1 && mod.LogLevel != -1 {
			report.SetLogLevel(mod.LogLevel)
		}

		c.resolver = depm.NewFilePackageResolver(mod)
		c.entry = mod.EntryPath()
		target, timeFormat = mod.Name, mod.TimeFormat
	} else {
		// a lone package file is checked as the entry package of a module
		// rooted at its directory
		ext := filepath.Ext(c.rootAbsPath)
		name := strings.TrimSuffix(filepath.Base(c.rootAbsPath), ext)

		c.resolver = &depm.FilePackageResolver{Root: filepath.Dir(c.rootAbsPath), Extension: ext}
		c.entry = []string{name}
		target, timeFormat = name, common.DefaultTimeFormat
	}

	report.ReportCompileHeader(target, timeFormat)

	report.ReportBeginPhase("Loading")
	prog, reprPath, err := c.resolver.ResolvePackage(c.entry)
	if err != nil {
		report.ReportStdError(reprPath, err)
		return c.finish()
	}
	report.ReportEndPhase()

	report.ReportBeginPhase("Resolving")
	c.prog, err = walk.ResolveProgram(prog, c.resolver)
	if err != nil {
		if cerr, ok := err.(*report.CompileError); ok && cerr.ReprPath != "" {
			reprPath = cerr.ReprPath
		}

		report.ReportError(reprPath, err)
		return c.finish()
	}
	report.ReportEndPhase()

	report.ReportInfo(
		"Resolved",
		"%d packages, %d definitions, %d slots",
		len(c.prog.Imports)+1, c.countDefs(), c.prog.SlotCount,
	)

	return c.finish()
}

// finish ends the current phase and displays the concluding message.
func (c *Checker) finish() bool {
	report.ReportEndPhase()
	report.ReportCompilationFinished()
	return !report.AnyErrors()
}

// countDefs counts the top level definitions of every resolved package.
func (c *Checker) countDefs() int {
	n := len(c.prog.Defs)
	for _, pkg := range c.prog.Imports {
		n += len(pkg.Defs)
	}

	return n
}

// Dump writes the resolved definitions of the entry package to w.
func (c *Checker) Dump(w io.Writer) {
	if c.prog == nil {
		return
	}

	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	cfg.Fdump(w, c.prog.Defs)
}
