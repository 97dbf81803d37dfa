package walk

import (
	"bitc/ast"
	"bitc/common"
	"bitc/depm"
	"bitc/report"
	"bitc/sem"
	"bitc/typing"
)

// walkDef resolves a definition and declares its names in env.
func (w *Walker) walkDef(def ast.Def, env *depm.Environment) sem.Def {
	switch v := def.(type) {
	case *ast.VarDef:
		return w.walkVarDef(v, env)
	case *ast.FuncDef:
		return w.walkFuncDef(v, env)
	case *ast.TypeDef:
		return w.walkTypeDef(v, env)
	case *ast.ClassDef:
		return w.walkClassDef(v, env)
	case *ast.ImplDef:
		return w.walkImplDef(v, env)
	}

	report.ReportICE("unknown definition: %T", def)
	return nil
}

// walkVarDef resolves a variable or value declaration.  The initializer is
// resolved before the name is declared.  Without a declared type, variables
// take the widened type of their initializer and values its exact type.
func (w *Walker) walkVarDef(vd *ast.VarDef, env *depm.Environment) *sem.VarDef {
	value := w.walkExpr(vd.Value, env)

	var typ typing.Type
	if vd.Type != nil {
		typ = w.walkTypeExpr(vd.Type, env)
		w.mustExtend(value.Type(), typ, vd.Value.Span())
	} else if vd.Mutable {
		typ = typing.Widen(value.Type())
	} else {
		typ = value.Type()
	}

	var sym common.Symbol
	var err error
	if vd.Mutable {
		sym, err = env.DeclareVariable(vd.Name, typ)
	} else {
		sym, err = env.DeclareValue(vd.Name, typ)
	}
	w.check(err, vd.Span())

	return sem.NewVarDef(vd.Span(), sym, vd.Mutable, typ, value)
}

// -----------------------------------------------------------------------------

// funcSignature is the resolved signature of a function.
type funcSignature struct {
	// The environment the body is resolved in.
	env *depm.Environment

	typ    *typing.FuncType
	params []common.Symbol
}

// walkSignature resolves the generics, parameters and return type of a
// function in a new child of env.  If this is not nil, `this` is bound to it
// before the parameters.
func (w *Walker) walkSignature(
	generics []*ast.TypeParam,
	params []*ast.Param,
	returnType ast.TypeExpr,
	env *depm.Environment,
	this typing.Type,
) (*funcSignature, common.Symbol) {
	funcEnv := env.Child()
	typeVars := w.walkGenerics(generics, funcEnv)

	var thisSym common.Symbol
	if this != nil {
		var err error
		thisSym, err = funcEnv.DeclareValue("this", this)
		w.check(err, nil)
	}

	paramTypes := make([]typing.Type, len(params))
	paramSyms := make([]common.Symbol, len(params))
	for i, param := range params {
		paramTypes[i] = w.walkTypeExpr(param.Type, funcEnv)

		sym, err := funcEnv.DeclareValue(param.Name, paramTypes[i])
		w.check(err, param.Span())
		paramSyms[i] = sym
	}

	return &funcSignature{
		env: funcEnv,
		typ: &typing.FuncType{
			ReturnType: w.walkReturnTypeExpr(returnType, funcEnv),
			Generics:   typeVars,
			Params:     paramTypes,
		},
		params: paramSyms,
	}, thisSym
}

// walkFuncBody resolves the body of a function in the signature's
// environment.
func (w *Walker) walkFuncBody(body ast.Expr, sig *funcSignature) sem.Expr {
	loopDepth := w.loopDepth
	w.funcDepth++
	w.loopDepth = 0

	defer func() {
		w.funcDepth--
		w.loopDepth = loopDepth
	}()

	return w.walkExpr(body, sig.env)
}

// checkInferredReturn checks that the body type of a function joined with
// every type it returns early with extends the declared return type.
func (w *Walker) checkInferredReturn(body sem.Expr, returnType typing.Type) {
	inferred := typing.Union(body.Type(), body.ReturnType())
	if !typing.Extend(inferred, returnType) {
		w.raise(
			report.TypeMismatch,
			body.Span(),
			"function should return %s but returns %s",
			returnType.Repr(),
			inferred.Repr(),
		)
	}
}

// walkFuncDef resolves a named function.  The name is declared before the
// body is resolved so functions may be recursive.
func (w *Walker) walkFuncDef(fd *ast.FuncDef, env *depm.Environment) *sem.FuncDef {
	sig, _ := w.walkSignature(fd.Generics, fd.Params, fd.ReturnType, env, nil)

	sym, err := env.DeclareValue(fd.Name, sig.typ)
	w.check(err, fd.Span())

	body := w.walkFuncBody(fd.Body, sig)
	w.checkInferredReturn(body, sig.typ.ReturnType)

	return sem.NewFuncDef(fd.Span(), sym, sig.typ, sig.params, body)
}

// -----------------------------------------------------------------------------

// walkTypeDef resolves a type declaration.
func (w *Walker) walkTypeDef(td *ast.TypeDef, env *depm.Environment) *sem.TypeDef {
	if td.Parameterized {
		sym := w.declareTypeFunc(td, env)
		return sem.NewTypeDef(td.Span(), sym, nil, nil)
	}

	var typ typing.Type
	if td.Value == nil {
		typ = typing.NewNominal(td.Name)
	} else {
		typ = w.walkTypeExpr(td.Value, env)
	}

	typeSym, err := env.DeclareType(td.Name, typ)
	w.check(err, td.Span())

	valueSym, err := env.DeclareValue(td.Name, typ)
	w.check(err, td.Span())

	return sem.NewTypeDef(td.Span(), typeSym, &valueSym, typ)
}

// typeFuncApp is one memoized application of a type function.
type typeFuncApp struct {
	args   []typing.Type
	result typing.Type
}

// declareTypeFunc declares a parameterized type.  Applications are memoized
// by structural equality of their arguments so that equal applications yield
// the same type.  Applying the function to arguments it is already being
// applied to is an error.
func (w *Walker) declareTypeFunc(td *ast.TypeDef, env *depm.Environment) common.Symbol {
	bounds := make([]typing.Type, len(td.Params))
	for i, param := range td.Params {
		if param.Bound == nil {
			bounds[i] = typing.Any
		} else {
			bounds[i] = w.walkTypeExpr(param.Bound, env)
		}
	}

	// parameterized nominal types yield the same nominal for every argument
	var nominal typing.Type
	if td.Value == nil {
		nominal = typing.NewNominal(td.Name)
	}

	memo := make(map[uint64][]*typeFuncApp)
	var active [][]typing.Type

	apply := func(args []typing.Type) (result typing.Type, err error) {
		defer report.Catch(&err)

		for i, arg := range args {
			if !typing.Extend(arg, bounds[i]) {
				w.raise(
					report.TypeMismatch,
					td.Span(),
					"type %s does not satisfy the bounds %s of parameter `%s` of `%s`",
					arg.Repr(), bounds[i].Repr(), td.Params[i].Name, td.Name,
				)
			}
		}

		key := hashTypes(args)
		for _, app := range memo[key] {
			if equalTypes(app.args, args) {
				return app.result, nil
			}
		}

		for _, activeArgs := range active {
			if equalTypes(activeArgs, args) {
				w.raise(report.CyclicType, td.Span(), "type function `%s` is applied to itself recursively", td.Name)
			}
		}

		if nominal != nil {
			result = nominal
		} else {
			active = append(active, args)
			defer func() {
				active = active[:len(active)-1]
			}()

			appEnv := env.Child()
			for i, param := range td.Params {
				_, err := appEnv.DeclareType(param.Name, args[i])
				w.check(err, param.Span())
			}

			result = w.walkTypeExpr(td.Value, appEnv)
		}

		memo[key] = append(memo[key], &typeFuncApp{args: args, result: result})
		return result, nil
	}

	sym, err := env.DeclareTypeFunc(td.Name, len(td.Params), apply)
	w.check(err, td.Span())
	return sym
}

// hashTypes computes a structural hash of a list of types.
func hashTypes(types []typing.Type) uint64 {
	var h uint64 = 17
	for _, t := range types {
		h = h*31 + typing.Hash(t)
	}

	return h
}

// equalTypes returns whether two lists of types are structurally equal.
func equalTypes(a, b []typing.Type) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !typing.Equals(a[i], b[i]) {
			return false
		}
	}

	return true
}
