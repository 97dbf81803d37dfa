package ast

import "bitc/report"

// The abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// Stmt is a statement of a block: a definition, an assignment or an
// expression.
type Stmt interface {
	ASTNode

	stmtNode()
}

// -----------------------------------------------------------------------------

// Program is the untyped syntax tree of one source file.
type Program struct {
	// The imports of the program in source order.
	Imports []*Import

	// The top level definitions of the program in source order.
	Defs []Def
}

// Import is an import of another package.
type Import struct {
	ASTBase

	// The path of the imported package: eg. `io.files` is `["io", "files"]`.
	Path []string

	// The names selected by the import.  If this is nil, every declaration of
	// the package is imported.
	Only []string
}

// Selects returns whether the import makes the declaration named name visible.
func (imp *Import) Selects(name string) bool {
	if imp.Only == nil {
		return true
	}

	for _, selected := range imp.Only {
		if selected == name {
			return true
		}
	}

	return false
}
