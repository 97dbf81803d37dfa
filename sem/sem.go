package sem

import (
	"bitc/common"
	"bitc/depm"
	"bitc/report"
)

// Program is the resolved tree of a whole program: the entry package along
// with every package it transitively imports.
type Program struct {
	// The imported packages in the order they must be initialized: every
	// package appears after all the packages it imports.
	Imports []*Package

	// The definitions of the entry package.
	Defs []Def

	// The environment of the entry package after resolution.
	Env *depm.Environment

	// The number of value slots allocated: this is the size of the variable
	// store the interpreter must preallocate.
	SlotCount int
}

// Package is a resolved imported package.
type Package struct {
	// The dot separated path of the package.
	Path string

	// The path the package is reported under.
	ReprPath string

	Defs []Def
}

// Stmt is a resolved statement: a definition, an assignment or an expression.
type Stmt interface {
	Span() *report.TextSpan
}

// Def is a resolved definition.
type Def interface {
	Stmt

	// Symbols returns the value symbols the definition declares.
	Symbols() []common.Symbol
}

// nodeBase is the base struct for all resolved nodes.
type nodeBase struct {
	span *report.TextSpan
}

func (nb nodeBase) Span() *report.TextSpan {
	return nb.span
}
