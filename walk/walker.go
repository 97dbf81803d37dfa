package walk

import (
	"bitc/ast"
	"bitc/depm"
	"bitc/report"
	"bitc/sem"
	"bitc/typing"
	"errors"

	"github.com/hashicorp/go-set/v3"
)

// Walker is responsible for walking syntax trees and resolving them into typed
// trees: it performs all the semantic analysis of a program.
type Walker struct {
	// The resolver used to load imported packages.
	resolver depm.PackageResolver

	// The slot allocator shared by every environment of the program.
	slots *depm.SlotAllocator

	// The environment holding the built-ins.  Every package is resolved in a
	// child of the universe.
	universe *depm.Environment

	// The packages which have been imported so far by path.
	packages map[string]*importedPackage

	// The paths of the packages which are still being resolved.
	loading *set.Set[string]

	// The resolved imported packages in initialization order.
	imported []*sem.Package

	// The number of enclosing functions.  Return expressions are only valid
	// when this is positive.
	funcDepth int

	// The number of loops until the innermost enclosing function.
	loopDepth int
}

// NewWalker creates a new walker loading imports through resolver.
func NewWalker(resolver depm.PackageResolver) *Walker {
	slots := depm.NewSlotAllocator()

	return &Walker{
		resolver: resolver,
		slots:    slots,
		universe: depm.NewUniverse(slots),
		packages: make(map[string]*importedPackage),
		loading:  set.New[string](0),
	}
}

// ResolveProgram resolves the entry package of a program along with all of
// the packages it imports.  Any compile error stops resolution and is
// returned as a `*report.CompileError`.
func ResolveProgram(prog *ast.Program, resolver depm.PackageResolver) (*sem.Program, error) {
	return NewWalker(resolver).Resolve(prog)
}

// Resolve resolves prog as the entry package.
func (w *Walker) Resolve(prog *ast.Program) (result *sem.Program, err error) {
	defer report.Catch(&err)

	env, defs := w.walkPackage(prog)

	return &sem.Program{
		Imports:   w.imported,
		Defs:      defs,
		Env:       env,
		SlotCount: w.slots.ValueCount(),
	}, nil
}

// ResolveExpr resolves a single expression in env.  This is used to check
// expressions outside of any package, such as in tests or tools.
func (w *Walker) ResolveExpr(expr ast.Expr, env *depm.Environment) (result sem.Expr, err error) {
	defer report.Catch(&err)

	return w.walkExpr(expr, env), nil
}

// Universe returns the environment holding the built-ins.
func (w *Walker) Universe() *depm.Environment {
	return w.universe
}

// -----------------------------------------------------------------------------

// walkPackage resolves the imports and then the definitions of a package. It
// returns the environment holding the package's declarations.
func (w *Walker) walkPackage(prog *ast.Program) (*depm.Environment, []sem.Def) {
	merged := w.universe.Child()
	for _, imp := range prog.Imports {
		merged = w.walkImport(imp, merged)
	}

	env := merged.Child()
	defs := make([]sem.Def, len(prog.Defs))
	for i, def := range prog.Defs {
		defs[i] = w.walkDef(def, env)
	}

	return env, defs
}

// -----------------------------------------------------------------------------

// raise aborts resolution with a compile error on the given span.
func (w *Walker) raise(kind report.ErrorKind, span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(kind, span, msg, args...))
}

// check aborts resolution with err if it is not nil.  Compile errors returned
// by the environment are given the span; errors from the type algebra are
// converted to the matching kind of compile error.
func (w *Walker) check(err error, span *report.TextSpan) {
	if err == nil {
		return
	}

	var cerr *report.CompileError
	if errors.As(err, &cerr) {
		if cerr.Span == nil {
			cerr.Span = span
		}

		panic(cerr)
	}

	kind := report.TypeMismatch
	switch err.(type) {
	case *typing.ArityError:
		kind = report.ArityMismatch
	default:
		if errors.Is(err, typing.ErrDivisionByZero) {
			kind = report.Arithmetic
		}
	}

	w.raise(kind, span, "%s", err.Error())
}

// mustExtend raises a type mismatch if actual does not extend expected.
func (w *Walker) mustExtend(actual, expected typing.Type, span *report.TextSpan) {
	if !typing.Extend(actual, expected) {
		w.raise(report.TypeMismatch, span, "type mismatch: expected %s but got %s", expected.Repr(), actual.Repr())
	}
}

// returnTypeOf returns the union of the early-exit types of exprs.
func returnTypeOf(exprs ...sem.Expr) typing.Type {
	types := make([]typing.Type, 0, len(exprs))
	for _, expr := range exprs {
		if expr != nil {
			types = append(types, expr.ReturnType())
		}
	}

	return typing.Union(types...)
}
