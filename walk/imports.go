package walk

import (
	"bitc/ast"
	"bitc/depm"
	"bitc/report"
	"bitc/sem"
	"strings"
)

// importedPackage is a package which has been fully resolved.
type importedPackage struct {
	// The environment holding the package's declarations.
	env *depm.Environment

	// The path the package is reported under.
	reprPath string
}

// walkImport resolves an import and returns the environment of the importer
// extended with the selected declarations of the imported package.  Each
// package is resolved at most once.
func (w *Walker) walkImport(imp *ast.Import, merged *depm.Environment) *depm.Environment {
	key := strings.Join(imp.Path, ".")

	if w.loading.Contains(key) {
		w.raise(report.CyclicImport, imp.Span(), "cyclic import of package `%s`", key)
	}

	pkg, ok := w.packages[key]
	if !ok {
		pkg = w.loadPackage(imp, key)
	}

	for _, name := range imp.Only {
		if !pkg.env.Declares(name) {
			w.raise(report.UndeclaredName, imp.Span(), "package `%s` does not declare `%s`", key, name)
		}
	}

	return pkg.env.Export(imp.Selects).WithParent(merged)
}

// loadPackage loads and resolves the package at the path of imp.
func (w *Walker) loadPackage(imp *ast.Import, key string) *importedPackage {
	w.loading.Insert(key)
	defer w.loading.Remove(key)

	prog, reprPath, err := w.resolver.ResolvePackage(imp.Path)
	if err != nil {
		w.raise(report.BadImport, imp.Span(), "unable to import `%s`: %s", key, err.Error())
	}

	// the walking context of the importer does not carry into the package
	funcDepth, loopDepth := w.funcDepth, w.loopDepth
	w.funcDepth, w.loopDepth = 0, 0

	env, defs := w.walkPackageAt(prog, reprPath)

	w.funcDepth, w.loopDepth = funcDepth, loopDepth

	pkg := &importedPackage{env: env, reprPath: reprPath}
	w.packages[key] = pkg
	w.imported = append(w.imported, &sem.Package{Path: key, ReprPath: reprPath, Defs: defs})

	return pkg
}

// walkPackageAt resolves an imported package attributing any compile error
// which occurs inside of it to reprPath.
func (w *Walker) walkPackageAt(prog *ast.Program, reprPath string) (*depm.Environment, []sem.Def) {
	defer func() {
		if x := recover(); x != nil {
			if cerr, ok := x.(*report.CompileError); ok && cerr.ReprPath == "" {
				cerr.ReprPath = reprPath
			}

			panic(x)
		}
	}()

	return w.walkPackage(prog)
}
