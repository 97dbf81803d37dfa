package walk

import (
	"bitc/ast"
	"bitc/common"
	"bitc/depm"
	"bitc/report"
	"bitc/sem"
	"bitc/typing"
)

// classBuilder accumulates the structural types of a class as its members are
// resolved.
type classBuilder struct {
	// The fields of `this`: every member of the class.
	thisFields map[string]typing.Type

	// The fields of the public type of the class.
	publicFields map[string]typing.Type
}

// addField adds a member to the types of the class.
func (w *Walker) addField(cb *classBuilder, member *ast.Member, name string, typ typing.Type) {
	if _, ok := cb.thisFields[name]; ok {
		w.raise(report.DuplicateDeclaration, member.Def.Span(), "multiple members named `%s` in class", name)
	}

	cb.thisFields[name] = typ
	if member.Public {
		cb.publicFields[name] = typ
	}
}

// walkClassDef resolves a class.  The class name is declared both as the
// public type of the class and as its constructor.  Constructor parameters are
// visible to field initializers but not to methods; methods see all of the
// class's members through `this`.
func (w *Walker) walkClassDef(cd *ast.ClassDef, env *depm.Environment) *sem.ClassDef {
	cb := &classBuilder{
		thisFields:   make(map[string]typing.Type),
		publicFields: make(map[string]typing.Type),
	}

	// the class types are completed as the members are resolved so that the
	// class may refer to itself
	publicType := typing.NewStruct(cb.publicFields)
	thisType := typing.NewStruct(cb.thisFields)

	typeSym, err := env.DeclareType(cd.Name, publicType)
	w.check(err, cd.Span())

	paramsEnv := env.Child()
	paramTypes := make([]typing.Type, len(cd.Params))
	paramSyms := make([]common.Symbol, len(cd.Params))
	for i, param := range cd.Params {
		paramTypes[i] = w.walkTypeExpr(param.Type, env)

		sym, err := paramsEnv.DeclareValue(param.Name, paramTypes[i])
		w.check(err, param.Span())
		paramSyms[i] = sym
	}

	ctorType := typing.NewFunc(publicType, paramTypes...)
	ctorSym, err := env.DeclareConstructor(cd.Name, ctorType)
	w.check(err, cd.Span())

	bodyEnv := paramsEnv.Child()
	methodEnv := env.Child()

	thisSym, err := methodEnv.DeclareValue("this", thisType)
	w.check(err, cd.Span())

	// declare the method signatures and the explicitly typed fields
	sigs := make([]*funcSignature, len(cd.Members))
	methodSyms := make([]common.Symbol, len(cd.Members))
	for i, member := range cd.Members {
		switch v := member.Def.(type) {
		case *ast.FuncDef:
			sig, _ := w.walkSignature(v.Generics, v.Params, v.ReturnType, methodEnv, nil)

			sym, err := methodEnv.DeclareValue(v.Name, sig.typ)
			w.check(err, v.Span())

			sigs[i] = sig
			methodSyms[i] = sym
			w.addField(cb, member, v.Name, sig.typ)
		case *ast.VarDef:
			if v.Type != nil {
				w.addField(cb, member, v.Name, w.walkTypeExpr(v.Type, bodyEnv))
			}
		}
	}

	// resolve the fields and nested declarations in order
	members := make([]*sem.Member, len(cd.Members))
	for i, member := range cd.Members {
		if _, ok := member.Def.(*ast.FuncDef); ok {
			continue
		}

		def := w.walkDef(member.Def, bodyEnv)
		if vd, ok := def.(*sem.VarDef); ok && member.Def.(*ast.VarDef).Type == nil {
			w.addField(cb, member, vd.Symbol.Name, vd.Type)
		}

		members[i] = &sem.Member{Public: member.Public, Def: def}
	}

	// resolve the method bodies now that `this` is complete
	for i, member := range cd.Members {
		fd, ok := member.Def.(*ast.FuncDef)
		if !ok {
			continue
		}

		body := w.walkFuncBody(fd.Body, sigs[i])
		w.checkInferredReturn(body, sigs[i].typ.ReturnType)

		members[i] = &sem.Member{
			Public: member.Public,
			Def:    sem.NewFuncDef(fd.Span(), methodSyms[i], sigs[i].typ, sigs[i].params, body),
		}
	}

	return sem.NewClassDef(cd.Span(), typeSym, ctorSym, ctorType, paramSyms, thisSym, thisType, members)
}

// -----------------------------------------------------------------------------

// walkImplDef resolves an implementation block: each function is declared as
// an extension whose receiver is the implemented type.  The body of an
// extension must extend its return type on its own.
func (w *Walker) walkImplDef(id *ast.ImplDef, env *depm.Environment) *sem.ImplDef {
	tb, err := env.LookupType(id.TypeName)
	w.check(err, id.Span())
	receiver := tb.Type

	funcs := make([]*sem.ExtensionDef, len(id.Funcs))
	for i, fd := range id.Funcs {
		sig, thisSym := w.walkSignature(fd.Generics, fd.Params, fd.ReturnType, env, receiver)

		sym, err := env.DeclareExtension(fd.Name, receiver, sig.typ)
		w.check(err, fd.Span())

		body := w.walkFuncBody(fd.Body, sig)

		returnType := sig.typ.ReturnType
		if !typing.Extend(body.Type(), returnType) {
			w.raise(
				report.TypeMismatch,
				fd.Body.Span(),
				"extension `%s` should return %s but its body is %s",
				fd.Name, returnType.Repr(), body.Type().Repr(),
			)
		} else if !typing.Extend(body.ReturnType(), returnType) {
			w.raise(
				report.TypeMismatch,
				fd.Body.Span(),
				"extension `%s` should return %s but returns %s",
				fd.Name, returnType.Repr(), body.ReturnType().Repr(),
			)
		}

		funcs[i] = &sem.ExtensionDef{
			FuncDef: *sem.NewFuncDef(fd.Span(), sym, sig.typ, sig.params, body),
			This:    thisSym,
		}
	}

	return sem.NewImplDef(id.Span(), receiver, funcs)
}
