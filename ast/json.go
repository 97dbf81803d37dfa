package ast

import (
	"bitc/report"
	"encoding/json"
	"fmt"
	"io"
)

// The parser hands syntax trees over as JSON.  Every node is an object with a
// "kind" field and an optional "span" field of the form
// [startLine, startCol, endLine, endCol].

// DecodeError is an error in the JSON representation of a syntax tree.
type DecodeError struct {
	Message string
}

func (de *DecodeError) Error() string {
	return "malformed syntax tree: " + de.Message
}

// object is a decoded JSON object.
type object = map[string]interface{}

// DecodeProgram decodes a program from its JSON representation.
func DecodeProgram(r io.Reader) (prog *Program, err error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var root object
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}

	defer func() {
		if x := recover(); x != nil {
			if derr, ok := x.(*DecodeError); ok {
				err = derr
				return
			}

			panic(x)
		}
	}()

	prog = &Program{}
	for _, item := range getList(root, "imports") {
		o := asObject(item)
		prog.Imports = append(prog.Imports, &Import{
			ASTBase: NewASTBaseOn(spanOf(o)),
			Path:    getStrings(o, "path"),
			Only:    getStrings(o, "only"),
		})
	}

	for _, item := range getList(root, "defs") {
		prog.Defs = append(prog.Defs, decodeDef(asObject(item)))
	}

	return prog, nil
}

// -----------------------------------------------------------------------------

// defKinds is the set of node kinds which are definitions.
var defKinds = map[string]struct{}{
	"var": {}, "val": {}, "func": {}, "type": {}, "class": {}, "impl": {},
}

func decodeStmt(o object) Stmt {
	kind := kindOf(o)
	if _, ok := defKinds[kind]; ok {
		return decodeDef(o)
	} else if kind == "assign" {
		return &Assign{
			ASTBase: NewASTBaseOn(spanOf(o)),
			Target:  decodeExpr(getObject(o, "target")),
			Value:   decodeExpr(getObject(o, "value")),
		}
	}

	return decodeExpr(o)
}

func decodeDef(o object) Def {
	base := NewASTBaseOn(spanOf(o))

	switch kind := kindOf(o); kind {
	case "var", "val":
		return &VarDef{
			ASTBase: base,
			Name:    getString(o, "name"),
			Mutable: kind == "var",
			Type:    optTypeExpr(o, "type"),
			Value:   decodeExpr(getObject(o, "value")),
		}
	case "func":
		return decodeFuncDef(o)
	case "type":
		_, parameterized := optField(o, "params")
		return &TypeDef{
			ASTBase:       base,
			Name:          getString(o, "name"),
			Parameterized: parameterized,
			Params:        decodeTypeParams(o, "params"),
			Value:         optTypeExpr(o, "value"),
		}
	case "class":
		cd := &ClassDef{
			ASTBase: base,
			Name:    getString(o, "name"),
			Params:  decodeParams(o),
		}

		for _, item := range getList(o, "members") {
			mo := asObject(item)
			cd.Members = append(cd.Members, &Member{
				Public: getBool(mo, "public"),
				Def:    decodeDef(mo),
			})
		}

		return cd
	case "impl":
		id := &ImplDef{ASTBase: base, TypeName: getString(o, "type")}
		for _, item := range getList(o, "funcs") {
			id.Funcs = append(id.Funcs, decodeFuncDef(asObject(item)))
		}

		return id
	default:
		fail("unknown definition kind `%s`", kind)
		return nil
	}
}

func decodeFuncDef(o object) *FuncDef {
	return &FuncDef{
		ASTBase:    NewASTBaseOn(spanOf(o)),
		Name:       getString(o, "name"),
		Generics:   decodeTypeParams(o, "generics"),
		Params:     decodeParams(o),
		ReturnType: optTypeExpr(o, "return"),
		Body:       decodeExpr(getObject(o, "body")),
	}
}

func decodeTypeParams(o object, key string) []*TypeParam {
	var params []*TypeParam
	for _, item := range getList(o, key) {
		po := asObject(item)
		params = append(params, &TypeParam{
			ASTBase: NewASTBaseOn(spanOf(po)),
			Name:    getString(po, "name"),
			Bound:   optTypeExpr(po, "bound"),
		})
	}

	return params
}

func decodeParams(o object) []*Param {
	var params []*Param
	for _, item := range getList(o, "params") {
		po := asObject(item)
		params = append(params, &Param{
			ASTBase: NewASTBaseOn(spanOf(po)),
			Name:    getString(po, "name"),
			Type:    decodeTypeExpr(getObject(po, "type")),
		})
	}

	return params
}

// -----------------------------------------------------------------------------

func decodeExpr(o object) Expr {
	base := NewASTBaseOn(spanOf(o))

	switch kind := kindOf(o); kind {
	case "ident":
		return &Identifier{ASTBase: base, Name: getString(o, "name")}
	case "call":
		return &Call{
			ASTBase:  base,
			Func:     decodeExpr(getObject(o, "func")),
			Generics: decodeTypeExprs(o, "generics"),
			Args:     decodeExprs(o, "args"),
		}
	case "block":
		block := &Block{ASTBase: base}
		for _, item := range getList(o, "stmts") {
			block.Stmts = append(block.Stmts, decodeStmt(asObject(item)))
		}

		return block
	case "int":
		return &IntLit{ASTBase: base, Value: getNumber(o, "value")}
	case "string":
		return &StringLit{ASTBase: base, Value: getString(o, "value")}
	case "bool":
		return &BoolLit{ASTBase: base, Value: getBool(o, "value")}
	case "binary":
		return &BinaryOp{
			ASTBase: base,
			Op:      getOper(o, binaryOpers),
			Lhs:     decodeExpr(getObject(o, "lhs")),
			Rhs:     decodeExpr(getObject(o, "rhs")),
		}
	case "unary":
		return &UnaryOp{
			ASTBase: base,
			Op:      getOper(o, unaryOpers),
			Operand: decodeExpr(getObject(o, "operand")),
		}
	case "if":
		return &If{
			ASTBase: base,
			Cond:    decodeExpr(getObject(o, "cond")),
			Then:    decodeExpr(getObject(o, "then")),
			Else:    optExpr(o, "else"),
		}
	case "while":
		return &While{
			ASTBase: base,
			Cond:    decodeExpr(getObject(o, "cond")),
			Body:    decodeExpr(getObject(o, "body")),
		}
	case "as":
		return &As{ASTBase: base, Expr: decodeExpr(getObject(o, "expr")), Type: decodeTypeExpr(getObject(o, "type"))}
	case "is":
		return &Is{ASTBase: base, Expr: decodeExpr(getObject(o, "expr")), Type: decodeTypeExpr(getObject(o, "type"))}
	case "struct":
		sl := &StructLit{ASTBase: base}
		for _, item := range getList(o, "fields") {
			fo := asObject(item)
			sl.Fields = append(sl.Fields, &FieldInit{
				Name:  getString(fo, "name"),
				Value: decodeExpr(getObject(fo, "value")),
			})
		}

		return sl
	case "access":
		return &Access{ASTBase: base, Expr: decodeExpr(getObject(o, "expr")), Field: getString(o, "field")}
	case "lambda":
		return &FuncLit{
			ASTBase:    base,
			Generics:   decodeTypeParams(o, "generics"),
			Params:     decodeParams(o),
			ReturnType: optTypeExpr(o, "return"),
			Body:       decodeExpr(getObject(o, "body")),
		}
	case "new":
		return &New{ASTBase: base, TypeName: getString(o, "type"), Args: decodeExprs(o, "args")}
	case "return":
		return &Return{ASTBase: base, Value: optExpr(o, "value")}
	case "break":
		return &Break{ASTBase: base}
	case "continue":
		return &Continue{ASTBase: base}
	default:
		fail("unknown expression kind `%s`", kind)
		return nil
	}
}

func decodeExprs(o object, key string) []Expr {
	var exprs []Expr
	for _, item := range getList(o, key) {
		exprs = append(exprs, decodeExpr(asObject(item)))
	}

	return exprs
}

func optExpr(o object, key string) Expr {
	if v, ok := optField(o, key); ok {
		return decodeExpr(asObject(v))
	}

	return nil
}

// -----------------------------------------------------------------------------

func decodeTypeExpr(o object) TypeExpr {
	base := NewASTBaseOn(spanOf(o))

	switch kind := kindOf(o); kind {
	case "name":
		return &TypeName{ASTBase: base, Name: getString(o, "name")}
	case "binary":
		return &TypeBinary{
			ASTBase: base,
			Op:      getOper(o, binaryOpers),
			Lhs:     decodeTypeExpr(getObject(o, "lhs")),
			Rhs:     decodeTypeExpr(getObject(o, "rhs")),
		}
	case "int":
		return &TypeIntLit{ASTBase: base, Value: getNumber(o, "value")}
	case "string":
		return &TypeStringLit{ASTBase: base, Value: getString(o, "value")}
	case "bool":
		return &TypeBoolLit{ASTBase: base, Value: getBool(o, "value")}
	case "struct":
		ts := &TypeStruct{ASTBase: base}
		for _, item := range getList(o, "fields") {
			fo := asObject(item)
			ts.Fields = append(ts.Fields, &TypeField{
				Name: getString(fo, "name"),
				Type: decodeTypeExpr(getObject(fo, "type")),
			})
		}

		return ts
	case "call":
		return &TypeCall{ASTBase: base, Name: getString(o, "name"), Args: decodeTypeExprs(o, "args")}
	case "match":
		tm := &TypeMatch{ASTBase: base, Value: decodeTypeExpr(getObject(o, "value"))}
		for _, item := range getList(o, "cases") {
			co := asObject(item)
			tm.Cases = append(tm.Cases, &TypeCase{
				Pattern: decodeTypeExpr(getObject(co, "pattern")),
				Result:  decodeTypeExpr(getObject(co, "result")),
			})
		}

		return tm
	case "func":
		return &TypeFunc{
			ASTBase:    base,
			Generics:   decodeTypeParams(o, "generics"),
			Params:     decodeTypeExprs(o, "params"),
			ReturnType: optTypeExpr(o, "return"),
		}
	default:
		fail("unknown type expression kind `%s`", kind)
		return nil
	}
}

func decodeTypeExprs(o object, key string) []TypeExpr {
	var types []TypeExpr
	for _, item := range getList(o, key) {
		types = append(types, decodeTypeExpr(asObject(item)))
	}

	return types
}

func optTypeExpr(o object, key string) TypeExpr {
	if v, ok := optField(o, key); ok {
		return decodeTypeExpr(asObject(v))
	}

	return nil
}

// -----------------------------------------------------------------------------

// fail aborts decoding with an error.
func fail(msg string, args ...interface{}) {
	panic(&DecodeError{Message: fmt.Sprintf(msg, args...)})
}

func asObject(v interface{}) object {
	o, ok := v.(object)
	if !ok {
		fail("expected an object but got %v", v)
	}

	return o
}

func kindOf(o object) string {
	return getString(o, "kind")
}

func optField(o object, key string) (interface{}, bool) {
	v, ok := o[key]
	return v, ok && v != nil
}

func getObject(o object, key string) object {
	v, ok := optField(o, key)
	if !ok {
		fail("missing field `%s` in `%s` node", key, o["kind"])
	}

	return asObject(v)
}

func getString(o object, key string) string {
	v, ok := optField(o, key)
	if !ok {
		fail("missing field `%s` in `%s` node", key, o["kind"])
	}

	s, ok := v.(string)
	if !ok {
		fail("field `%s` must be a string", key)
	}

	return s
}

// getNumber returns the decimal text of a number field.  Numbers may also be
// given as strings to carry more precision than JSON parsers preserve.
func getNumber(o object, key string) string {
	v, ok := optField(o, key)
	if !ok {
		fail("missing field `%s` in `%s` node", key, o["kind"])
	}

	switch n := v.(type) {
	case json.Number:
		return n.String()
	case string:
		return n
	default:
		fail("field `%s` must be a number", key)
		return ""
	}
}

func getBool(o object, key string) bool {
	v, ok := optField(o, key)
	if !ok {
		return false
	}

	b, ok := v.(bool)
	if !ok {
		fail("field `%s` must be a boolean", key)
	}

	return b
}

func getList(o object, key string) []interface{} {
	v, ok := optField(o, key)
	if !ok {
		return nil
	}

	list, ok := v.([]interface{})
	if !ok {
		fail("field `%s` must be a list", key)
	}

	return list
}

// getStrings returns a list of strings or nil if the field is absent.
func getStrings(o object, key string) []string {
	v, ok := optField(o, key)
	if !ok {
		return nil
	}

	list, ok := v.([]interface{})
	if !ok {
		fail("field `%s` must be a list", key)
	}

	strs := make([]string, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			fail("field `%s` must be a list of strings", key)
		}

		strs[i] = s
	}

	return strs
}

func getOper(o object, opers map[string]Oper) Oper {
	spelling := getString(o, "op")
	op, ok := opers[spelling]
	if !ok {
		fail("unknown operator `%s`", spelling)
	}

	return op
}

// spanOf returns the span of a node or nil if it has none.
func spanOf(o object) *report.TextSpan {
	v, ok := optField(o, "span")
	if !ok {
		return nil
	}

	list, ok := v.([]interface{})
	if !ok || len(list) != 4 {
		fail("span must be a list of four numbers")
	}

	var nums [4]int
	for i, item := range list {
		n, ok := item.(json.Number)
		if !ok {
			fail("span must be a list of four numbers")
		}

		i64, err := n.Int64()
		if err != nil {
			fail("invalid span position: %s", err)
		}

		nums[i] = int(i64)
	}

	return &report.TextSpan{StartLine: nums[0], StartCol: nums[1], EndLine: nums[2], EndCol: nums[3]}
}
