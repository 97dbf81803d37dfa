package report

import "fmt"

// ErrorKind classifies a compile error.
type ErrorKind int

// Enumeration of compile error kinds.
const (
	UndeclaredName ErrorKind = iota
	TypeMismatch
	ArityMismatch
	NotCallable
	NotStruct
	NotConstructor
	AmbiguousExtension
	DuplicateDeclaration
	CyclicImport
	Arithmetic
	InvalidControl
	NotAssignable
	BadImport
	CyclicType
)

var errorKindNames = map[ErrorKind]string{
	UndeclaredName:       "Name",
	TypeMismatch:         "Type",
	ArityMismatch:        "Arity",
	NotCallable:          "Call",
	NotStruct:            "Access",
	NotConstructor:       "Constructor",
	AmbiguousExtension:   "Extension",
	DuplicateDeclaration: "Definition",
	CyclicImport:         "Import",
	Arithmetic:           "Arithmetic",
	InvalidControl:       "Control",
	NotAssignable:        "Mutability",
	BadImport:            "Import",
	CyclicType:           "Type",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}

	return "Unknown"
}

// -----------------------------------------------------------------------------

// CompileError is an error in the program being resolved.  Any compile error
// is fatal to the resolution it occurs in.
type CompileError struct {
	// The kind of the error.
	Kind ErrorKind

	// The error message.
	Message string

	// The span over which the error occurs.  This may be nil if the input
	// carried no position information.
	Span *TextSpan

	// The path of the package the error occurred in.  This is empty if the
	// error occurred in the package being checked.
	ReprPath string
}

func (ce *CompileError) Error() string {
	if ce.Span == nil {
		return ce.Message
	}

	return fmt.Sprintf("%d:%d: %s", ce.Span.StartLine+1, ce.Span.StartCol+1, ce.Message)
}

// Raise creates a new compile error of the given kind.  It is meant to be
// used with `panic` inside a tree walk:
//
//	panic(report.Raise(report.TypeMismatch, span, "expected %s", typ.Repr()))
func Raise(kind ErrorKind, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{
		Kind:    kind,
		Message: fmt.Sprintf(msg, args...),
		Span:    span,
	}
}

// Errorf creates a compile error to be returned rather than raised.
func Errorf(kind ErrorKind, msg string, args ...interface{}) *CompileError {
	return Raise(kind, nil, msg, args...)
}

// IsKind returns whether err is a compile error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	cerr, ok := err.(*CompileError)
	return ok && cerr.Kind == kind
}

// -----------------------------------------------------------------------------

// Catch catches a compile error raised by a `panic` and stores it into the
// error pointed to by err.  Any other panic is propagated: those are internal
// errors, not errors in the user's program.
// NB: This function must ALWAYS be deferred.
func Catch(err *error) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			*err = cerr
			return
		}

		panic(x)
	}
}

// ICEError is an internal compiler error raised outside of a reporting
// context.  It is never recovered by Catch.
type ICEError struct {
	Message string
}

func (ie ICEError) Error() string {
	return "internal compiler error: " + ie.Message
}
