package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProgram = `{
  "imports": [{"path": ["geometry", "shapes"], "only": ["Square"]}],
  "defs": [
    {"kind": "var", "name": "x", "type": {"kind": "binary", "op": "|",
      "lhs": {"kind": "name", "name": "Integer"}, "rhs": {"kind": "name", "name": "String"}},
      "value": {"kind": "int", "value": 12345678901234567890123}},
    {"kind": "func", "name": "id", "span": [2, 0, 2, 30],
      "generics": [{"name": "T", "bound": {"kind": "name", "name": "Any"}}],
      "params": [{"name": "v", "type": {"kind": "name", "name": "T"}}],
      "return": {"kind": "name", "name": "T"},
      "body": {"kind": "block", "stmts": [
        {"kind": "if", "cond": {"kind": "is", "expr": {"kind": "ident", "name": "v"}, "type": {"kind": "name", "name": "Integer"}},
         "then": {"kind": "return", "value": {"kind": "ident", "name": "v"}}},
        {"kind": "assign", "target": {"kind": "ident", "name": "x"}, "value": {"kind": "string", "value": "s"}},
        {"kind": "ident", "name": "v"}
      ]}},
    {"kind": "type", "name": "Pair", "params": [{"name": "A"}],
      "value": {"kind": "struct", "fields": [{"name": "first", "type": {"kind": "name", "name": "A"}}]}},
    {"kind": "type", "name": "Token"}
  ]
}`

func TestDecodeProgram(t *testing.T) {
	prog, err := DecodeProgram(strings.NewReader(sampleProgram))
	require.NoError(t, err)

	require.Len(t, prog.Imports, 1)
	assert.Equal(t, []string{"geometry", "shapes"}, prog.Imports[0].Path)
	assert.True(t, prog.Imports[0].Selects("Square"))
	assert.False(t, prog.Imports[0].Selects("Circle"))

	require.Len(t, prog.Defs, 4)

	x, ok := prog.Defs[0].(*VarDef)
	require.True(t, ok)
	assert.True(t, x.Mutable)
	assert.Equal(t, "12345678901234567890123", x.Value.(*IntLit).Value)
	assert.Equal(t, OpUnion, x.Type.(*TypeBinary).Op)

	fn, ok := prog.Defs[1].(*FuncDef)
	require.True(t, ok)
	assert.Equal(t, 2, fn.Span().StartLine)
	assert.Equal(t, 30, fn.Span().EndCol)
	require.Len(t, fn.Generics, 1)
	assert.Equal(t, "T", fn.Generics[0].Name)

	body := fn.Body.(*Block)
	require.Len(t, body.Stmts, 3)
	assert.IsType(t, &If{}, body.Stmts[0])
	assert.Nil(t, body.Stmts[0].(*If).Else)
	assert.IsType(t, &Assign{}, body.Stmts[1])
	assert.IsType(t, &Identifier{}, body.Stmts[2])

	pair := prog.Defs[2].(*TypeDef)
	assert.True(t, pair.Parameterized)
	assert.Nil(t, pair.Params[0].Bound)

	token := prog.Defs[3].(*TypeDef)
	assert.False(t, token.Parameterized)
	assert.Nil(t, token.Value)
	assert.Nil(t, token.Span())
}

func TestDecodeProgramErrors(t *testing.T) {
	cases := []string{
		`{"defs": [{"kind": "fn"}]}`,
		`{"defs": [{"kind": "val", "name": "x"}]}`,
		`{"defs": [{"kind": "val", "name": "x", "value": {"kind": "binary", "op": "%"}}]}`,
		`{"defs": [{"kind": "val", "name": "x", "value": {"kind": "int", "value": 1}, "span": [1, 2]}]}`,
	}

	for _, tc := range cases {
		_, err := DecodeProgram(strings.NewReader(tc))
		var derr *DecodeError
		assert.ErrorAs(t, err, &derr, tc)
	}

	_, err := DecodeProgram(strings.NewReader(`{`))
	assert.Error(t, err)
}
