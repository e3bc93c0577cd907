package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	// Compile-time check via assignment
	var _ Value = Null{}
	var _ Value = Bool(true)
	var _ Value = Int(42)
	var _ Value = Float(1.5)
	var _ Value = String("test")
	var _ Value = Array{String("a"), Int(1)}
	var _ Value = Object{"key": String("value")}
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Value
	}{
		{"null", `null`, Null{}},
		{"true", `true`, Bool(true)},
		{"false", `false`, Bool(false)},
		{"string", `"hello"`, String("hello")},
		{"int", `1000`, Int(1000)},
		{"negative int", `-7`, Int(-7)},
		{"float", `0.2`, Float(0.2)},
		{"exponent", `1e3`, Float(1000)},
		{"integral float stays float", `800.0`, Float(800)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLargeIntegerKeepsPrecision(t *testing.T) {
	got, err := Parse([]byte(`9007199254740993`))
	require.NoError(t, err)
	assert.Equal(t, Int(9007199254740993), got)
}

func TestParseIntegerOverflowBecomesFloat(t *testing.T) {
	got, err := Parse([]byte(`92233720368547758070`))
	require.NoError(t, err)
	f, ok := got.(Float)
	require.True(t, ok, "expected Float, got %T", got)
	assert.InDelta(t, 9.223372036854776e19, float64(f), 1e6)
}

func TestParseNested(t *testing.T) {
	got, err := Parse([]byte(`{"order":{"lineItems":[{"id":"li-1","quantity":2}],"note":null}}`))
	require.NoError(t, err)

	obj, ok := got.(Object)
	require.True(t, ok)

	order, ok := obj.Object("order")
	require.True(t, ok)
	assert.Equal(t, Null{}, order["note"])

	items := order.Array("lineItems")
	require.Len(t, items, 1)
	assert.Equal(t, Object{"id": String("li-1"), "quantity": Int(2)}, items[0])
}

func TestParseRejectsTrailingData(t *testing.T) {
	_, err := Parse([]byte(`{"a":1} {"b":2}`))
	require.Error(t, err)
}

func TestParseAllowsTrailingWhitespace(t *testing.T) {
	_, err := Parse([]byte("[1, 2]\n\n"))
	require.NoError(t, err)
}

func TestParseMalformed(t *testing.T) {
	for _, input := range []string{``, `{`, `[1,,2]`, `{"a":}`} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestParseHugeExponentFails(t *testing.T) {
	_, err := Parse([]byte(`1e400`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
