package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestValueFromJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Value
	}{
		{name: "null", json: `null`, want: nil},
		{name: "integer", json: `42`, want: int64(42)},
		{name: "negative integer", json: `-7`, want: int64(-7)},
		{name: "float", json: `1.5`, want: 1.5},
		{name: "exponent", json: `1e3`, want: 1000.0},
		{name: "string", json: `"hi"`, want: "hi"},
		{name: "bool", json: `true`, want: true},
		{name: "list", json: `[1, "a", null]`, want: []Value{int64(1), "a", nil}},
		{name: "object", json: `{"a": {"b": false}}`, want: map[string]Value{"a": map[string]Value{"b": false}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValueFromJSON(gjson.Parse(tt.json)))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "nil", Format(nil))
	assert.Equal(t, "3", Format(int64(3)))
	assert.Equal(t, "2.5", Format(2.5))
	assert.Equal(t, "[1, x]", Format([]Value{int64(1), "x"}))
	assert.Equal(t, "{a: 1, b: true}", Format(map[string]Value{"b": true, "a": int64(1)}))
}

func TestTruthyAndEqual(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(int64(0)))
	assert.False(t, Truthy(""))
	assert.True(t, Truthy("x"))
	assert.True(t, Truthy([]Value{nil}))

	assert.True(t, Equal(int64(2), 2.0))
	assert.False(t, Equal(int64(2), "2"))
	assert.True(t, Equal([]Value{"a"}, []Value{"a"}))
}

func TestArithmetic(t *testing.T) {
	v, err := arithmetic(OpAdd, int64(2), int64(3))
	assert.NoError(t, err)
	assert.Equal(t, int64(5), v)

	v, err = arithmetic(OpDiv, int64(7), int64(2))
	assert.NoError(t, err)
	assert.Equal(t, int64(3), v)

	v, err = arithmetic(OpMul, int64(2), 1.5)
	assert.NoError(t, err)
	assert.Equal(t, 3.0, v)

	v, err = arithmetic(OpAdd, "n=", int64(1))
	assert.NoError(t, err)
	assert.Equal(t, "n=1", v)

	_, err = arithmetic(OpMod, int64(1), int64(0))
	assert.EqualError(t, err, "division by zero")

	_, err = arithmetic(OpSub, "a", int64(1))
	assert.ErrorIs(t, err, errNotNumeric)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, int64(4), Normalize(4))
	assert.Equal(t, []Value{int64(1)}, Normalize([]any{1}))
	assert.Equal(t, int64(9), Normalize(Address(9)))
}
