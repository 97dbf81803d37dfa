package depm

import (
	"bitc/ast"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PackageResolver locates and decodes the syntax tree of an imported package.
type PackageResolver interface {
	// ResolvePackage returns the syntax tree of the package at path along with
	// the path it should be reported under.
	ResolvePackage(path []string) (*ast.Program, string, error)
}

// FilePackageResolver resolves packages from files below a source root: the
// package `a.b` is the file `<root>/a/b<ext>`.
type FilePackageResolver struct {
	// The directory containing the top level packages.
	Root string

	// The extension of package files, including the leading dot.
	Extension string
}

// NewFilePackageResolver creates a package resolver for the given module.
func NewFilePackageResolver(mod *BitModule) *FilePackageResolver {
	return &FilePackageResolver{Root: mod.SourceRoot, Extension: mod.Extension}
}

// PackageFile returns the file path the package at path is expected at.
func (fpr *FilePackageResolver) PackageFile(path []string) string {
	return filepath.Join(fpr.Root, filepath.Join(path...)) + fpr.Extension
}

func (fpr *FilePackageResolver) ResolvePackage(path []string) (*ast.Program, string, error) {
	fpath := fpr.PackageFile(path)

	f, err := os.Open(fpath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fpath, fmt.Errorf("no package found at `%s`", strings.Join(path, "."))
		}

		return nil, fpath, err
	}
	defer f.Close()

	prog, err := ast.DecodeProgram(f)
	if err != nil {
		return nil, fpath, err
	}

	return prog, fpath, nil
}

// MapPackageResolver resolves packages from syntax trees held in memory keyed
// by their dot separated path.
type MapPackageResolver map[string]*ast.Program

func (mpr MapPackageResolver) ResolvePackage(path []string) (*ast.Program, string, error) {
	key := strings.Join(path, ".")
	if prog, ok := mpr[key]; ok {
		return prog, key, nil
	}

	return nil, key, fmt.Errorf("no package found at `%s`", key)
}
