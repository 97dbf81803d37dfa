package walk

import (
	"bitc/ast"
	"bitc/depm"
	"bitc/report"
	"bitc/sem"
	"bitc/typing"
)

// walkExpr resolves an expression in env.
func (w *Walker) walkExpr(expr ast.Expr, env *depm.Environment) sem.Expr {
	switch v := expr.(type) {
	case *ast.Identifier:
		binding, err := env.LookupValue(v.Name)
		w.check(err, v.Span())

		return &sem.Identifier{
			ExprBase: sem.NewExprBase(v.Span(), binding.Type, typing.Never),
			Symbol:   binding.Symbol,
		}
	case *ast.Call:
		return w.walkCall(v, env)
	case *ast.Block:
		return w.walkBlock(v, env)
	case *ast.IntLit:
		typ := w.intLitType(v.Value, v.Span())
		return &sem.IntLit{
			ExprBase: sem.NewExprBase(v.Span(), typ, typing.Never),
			Value:    typ.Value,
		}
	case *ast.StringLit:
		return &sem.StringLit{
			ExprBase: sem.NewExprBase(v.Span(), typing.NewStringLiteral(v.Value), typing.Never),
			Value:    v.Value,
		}
	case *ast.BoolLit:
		return &sem.BoolLit{
			ExprBase: sem.NewExprBase(v.Span(), boolLitType(v.Value), typing.Never),
			Value:    v.Value,
		}
	case *ast.BinaryOp:
		return w.walkBinaryOp(v, env)
	case *ast.UnaryOp:
		return w.walkUnaryOp(v, env)
	case *ast.If:
		return w.walkIf(v, env)
	case *ast.While:
		return w.walkWhile(v, env)
	case *ast.As:
		return w.walkAs(v, env)
	case *ast.Is:
		return w.walkIs(v, env)
	case *ast.StructLit:
		return w.walkStructLit(v, env)
	case *ast.Access:
		return w.walkAccess(v, env)
	case *ast.FuncLit:
		return w.walkFuncLit(v, env)
	case *ast.New:
		return w.walkNew(v, env)
	case *ast.Return:
		return w.walkReturn(v, env)
	case *ast.Break:
		return w.walkBreak(v)
	case *ast.Continue:
		return w.walkContinue(v)
	}

	report.ReportICE("unknown expression: %T", expr)
	return nil
}

// -----------------------------------------------------------------------------

// walkBlock resolves a block in a new child of env.  The block evaluates to
// its last statement if that is an expression and to None otherwise.
func (w *Walker) walkBlock(block *ast.Block, env *depm.Environment) *sem.Block {
	blockEnv := env.Child()

	stmts := make([]sem.Stmt, len(block.Stmts))
	var contained []sem.Expr
	for i, stmt := range block.Stmts {
		stmts[i] = w.walkStmt(stmt, blockEnv)
		contained = append(contained, stmtExprs(stmts[i])...)
	}

	var typ typing.Type = typing.None
	if len(stmts) > 0 {
		if last, ok := stmts[len(stmts)-1].(sem.Expr); ok {
			typ = last.Type()
		}
	}

	return &sem.Block{
		ExprBase: sem.NewExprBase(block.Span(), typ, returnTypeOf(contained...)),
		Stmts:    stmts,
	}
}

// walkStmt resolves a statement of a block.
func (w *Walker) walkStmt(stmt ast.Stmt, env *depm.Environment) sem.Stmt {
	switch v := stmt.(type) {
	case ast.Def:
		return w.walkDef(v, env)
	case *ast.Assign:
		return w.walkAssign(v, env)
	case ast.Expr:
		return w.walkExpr(v, env)
	}

	report.ReportICE("unknown statement: %T", stmt)
	return nil
}

// stmtExprs returns the expressions of a statement which may return early
// from the enclosing function.  The bodies of nested functions never do.
func stmtExprs(stmt sem.Stmt) []sem.Expr {
	switch v := stmt.(type) {
	case sem.Expr:
		return []sem.Expr{v}
	case *sem.VarDef:
		return []sem.Expr{v.Value}
	case *sem.Assign:
		return []sem.Expr{v.Target, v.Value}
	}

	return nil
}

// walkAssign resolves an assignment to a variable or to a field of a struct.
func (w *Walker) walkAssign(assign *ast.Assign, env *depm.Environment) *sem.Assign {
	var target sem.Expr
	var expected typing.Type

	switch v := assign.Target.(type) {
	case *ast.Identifier:
		binding, err := env.LookupVariable(v.Name)
		w.check(err, v.Span())

		target = &sem.Identifier{
			ExprBase: sem.NewExprBase(v.Span(), binding.Type, typing.Never),
			Symbol:   binding.Symbol,
		}
		expected = binding.Type
	case *ast.Access:
		obj := w.walkExpr(v.Expr, env)

		ftype, ok := typing.FieldOf(obj.Type(), v.Field)
		if !ok {
			w.raise(report.NotStruct, v.Span(), "type %s has no field `%s` to assign to", obj.Type().Repr(), v.Field)
		}

		target = &sem.Access{
			ExprBase: sem.NewExprBase(v.Span(), ftype, obj.ReturnType()),
			Expr:     obj,
			Field:    v.Field,
		}
		expected = ftype
	default:
		w.raise(report.NotAssignable, assign.Target.Span(), "expression cannot be assigned to")
	}

	value := w.walkExpr(assign.Value, env)
	w.mustExtend(value.Type(), expected, assign.Value.Span())

	return sem.NewAssign(assign.Span(), target, value)
}

// -----------------------------------------------------------------------------

// walkAs resolves a type cast: the cast is valid if either type extends the
// other.
func (w *Walker) walkAs(as *ast.As, env *depm.Environment) *sem.As {
	expr := w.walkExpr(as.Expr, env)
	target := w.walkTypeExpr(as.Type, env)

	if !typing.Extend(target, expr.Type()) && !typing.Extend(expr.Type(), target) {
		w.raise(report.TypeMismatch, as.Span(), "cannot cast %s to %s", expr.Type().Repr(), target.Repr())
	}

	return &sem.As{
		ExprBase: sem.NewExprBase(as.Span(), target, expr.ReturnType()),
		Expr:     expr,
		Target:   target,
	}
}

// walkIs resolves a type test.  The test is `true` if the expression's type
// extends the target, `false` if the two types are disjoint, and Boolean
// otherwise.
func (w *Walker) walkIs(is *ast.Is, env *depm.Environment) *sem.Is {
	expr := w.walkExpr(is.Expr, env)
	target := w.walkTypeExpr(is.Type, env)

	var typ typing.Type
	if typing.Extend(expr.Type(), target) {
		typ = typing.True
	} else if typing.Intersection(expr.Type(), target) == typing.Never {
		typ = typing.False
	} else {
		typ = typing.Boolean
	}

	return &sem.Is{
		ExprBase: sem.NewExprBase(is.Span(), typ, expr.ReturnType()),
		Expr:     expr,
		Target:   target,
	}
}

// walkStructLit resolves a struct literal.
func (w *Walker) walkStructLit(sl *ast.StructLit, env *depm.Environment) *sem.StructLit {
	fieldTypes := make(map[string]typing.Type, len(sl.Fields))
	fields := make([]*sem.FieldInit, len(sl.Fields))
	values := make([]sem.Expr, len(sl.Fields))

	for i, field := range sl.Fields {
		if _, ok := fieldTypes[field.Name]; ok {
			w.raise(report.DuplicateDeclaration, sl.Span(), "multiple fields named `%s` in struct literal", field.Name)
		}

		values[i] = w.walkExpr(field.Value, env)
		fieldTypes[field.Name] = values[i].Type()
		fields[i] = &sem.FieldInit{Name: field.Name, Value: values[i]}
	}

	return &sem.StructLit{
		ExprBase: sem.NewExprBase(sl.Span(), typing.NewStruct(fieldTypes), returnTypeOf(values...)),
		Fields:   fields,
	}
}

// walkAccess resolves a field access.  If the accessed value has no such
// field, the access selects an extension function whose receiver the value
// extends.  Exactly one extension must match.
func (w *Walker) walkAccess(access *ast.Access, env *depm.Environment) sem.Expr {
	expr := w.walkExpr(access.Expr, env)

	if ftype, ok := typing.FieldOf(expr.Type(), access.Field); ok {
		return &sem.Access{
			ExprBase: sem.NewExprBase(access.Span(), ftype, expr.ReturnType()),
			Expr:     expr,
			Field:    access.Field,
		}
	}

	var matched []*depm.Extension
	for _, ext := range env.LookupExtensions(access.Field) {
		if typing.Extend(expr.Type(), ext.Receiver) {
			matched = append(matched, ext)
		}
	}

	switch len(matched) {
	case 0:
		w.raise(
			report.UndeclaredName,
			access.Span(),
			"type %s has no field or extension named `%s`",
			expr.Type().Repr(), access.Field,
		)
	case 1:
		return &sem.ExtensionAccess{
			ExprBase:  sem.NewExprBase(access.Span(), matched[0].Type, expr.ReturnType()),
			Receiver:  expr,
			Extension: matched[0].Symbol,
		}
	default:
		w.raise(
			report.AmbiguousExtension,
			access.Span(),
			"ambiguous extension: type %s matches %d extensions named `%s`",
			expr.Type().Repr(), len(matched), access.Field,
		)
	}

	return nil
}

// walkFuncLit resolves an anonymous function.
func (w *Walker) walkFuncLit(fl *ast.FuncLit, env *depm.Environment) *sem.FuncLit {
	sig, _ := w.walkSignature(fl.Generics, fl.Params, fl.ReturnType, env, nil)

	body := w.walkFuncBody(fl.Body, sig)
	w.checkInferredReturn(body, sig.typ.ReturnType)

	return &sem.FuncLit{
		ExprBase: sem.NewExprBase(fl.Span(), sig.typ, typing.Never),
		Params:   sig.params,
		Body:     body,
	}
}

// walkNew resolves the instantiation of a class.
func (w *Walker) walkNew(n *ast.New, env *depm.Environment) *sem.New {
	ctor, err := env.LookupConstructor(n.TypeName)
	w.check(err, n.Span())

	ctorType, ok := typing.AsFunc(ctor.Type)
	if !ok {
		w.raise(report.NotConstructor, n.Span(), "`%s` has no constructor", n.TypeName)
	}

	args := w.walkArgs(n.Args, ctorType.Params, n.Span(), env)

	return &sem.New{
		ExprBase:    sem.NewExprBase(n.Span(), ctorType.ReturnType, returnTypeOf(args...)),
		Constructor: ctor.Symbol,
		Args:        args,
	}
}
