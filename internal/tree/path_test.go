package tree

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustObject(t *testing.T, data string) Object {
	t.Helper()
	v, err := Parse([]byte(data))
	require.NoError(t, err)
	obj, ok := v.(Object)
	require.True(t, ok, "expected object, got %T", v)
	return obj
}

func TestGetNeverFails(t *testing.T) {
	obj := mustObject(t, `{
		"amounts": {"subtotal": 1000},
		"nullParent": null,
		"stringParent": "flat",
		"arrayParent": [1, 2]
	}`)

	tests := []struct {
		path string
		want Value
	}{
		{"amounts.subtotal", Int(1000)},
		{"amounts.missing", Null{}},
		{"missing.subtotal", Null{}},
		{"nullParent.subtotal", Null{}},
		{"stringParent.subtotal", Null{}},
		{"arrayParent.0", Null{}},
		{"amounts.subtotal.deeper", Null{}},
		{"", Null{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, obj.Get(tt.path))
		})
	}
}

func TestGetOnNilObject(t *testing.T) {
	var obj Object
	assert.Equal(t, Null{}, obj.Get("a.b"))
	assert.False(t, obj.NullString("a").Valid)
}

func TestObjectAndArray(t *testing.T) {
	obj := mustObject(t, `{"store": {"id": "s1"}, "items": [1], "notItems": {"a": 1}}`)

	store, ok := obj.Object("store")
	require.True(t, ok)
	assert.Equal(t, String("s1"), store["id"])

	_, ok = obj.Object("items")
	assert.False(t, ok)

	assert.Len(t, obj.Array("items"), 1)
	assert.Nil(t, obj.Array("notItems"))
	assert.Nil(t, obj.Array("missing"))
}

func TestPresent(t *testing.T) {
	obj := mustObject(t, `{
		"null": null, "false": false, "zero": 0, "empty": "", "emptyArr": [], "emptyObj": {},
		"true": true, "num": 3, "str": "x", "arr": [null], "obj": {"a": null}
	}`)

	for _, key := range []string{"null", "false", "zero", "empty", "emptyArr", "emptyObj", "missing"} {
		assert.False(t, obj.Present(key), key)
	}
	for _, key := range []string{"true", "num", "str", "arr", "obj"} {
		assert.True(t, obj.Present(key), key)
	}
}

func TestNullString(t *testing.T) {
	obj := mustObject(t, `{"s": "GBP", "i": 42, "f": 0.2, "b": true, "n": null, "o": {}, "a": []}`)

	assert.Equal(t, sql.NullString{String: "GBP", Valid: true}, obj.NullString("s"))
	assert.Equal(t, sql.NullString{String: "42", Valid: true}, obj.NullString("i"))
	assert.Equal(t, sql.NullString{String: "0.2", Valid: true}, obj.NullString("f"))
	assert.Equal(t, sql.NullString{String: "true", Valid: true}, obj.NullString("b"))
	assert.False(t, obj.NullString("n").Valid)
	assert.False(t, obj.NullString("o").Valid)
	assert.False(t, obj.NullString("a").Valid)
	assert.False(t, obj.NullString("missing").Valid)
}

func TestNullInt64(t *testing.T) {
	obj := mustObject(t, `{"i": 800, "whole": 800.0, "frac": 1.5, "s": "800", "padded": " 1000 ",
		"swhole": "12.0", "sfrac": "1.5", "word": "many", "empty": "", "n": null, "b": true}`)

	assert.Equal(t, sql.NullInt64{Int64: 800, Valid: true}, obj.NullInt64("i"))
	assert.Equal(t, sql.NullInt64{Int64: 800, Valid: true}, obj.NullInt64("whole"))
	assert.False(t, obj.NullInt64("frac").Valid)
	assert.Equal(t, sql.NullInt64{Int64: 800, Valid: true}, obj.NullInt64("s"))
	assert.Equal(t, sql.NullInt64{Int64: 1000, Valid: true}, obj.NullInt64("padded"))
	assert.Equal(t, sql.NullInt64{Int64: 12, Valid: true}, obj.NullInt64("swhole"))
	assert.False(t, obj.NullInt64("sfrac").Valid)
	assert.False(t, obj.NullInt64("word").Valid)
	assert.False(t, obj.NullInt64("empty").Valid)
	assert.False(t, obj.NullInt64("n").Valid)
	assert.False(t, obj.NullInt64("b").Valid)
}

func TestNullFloat64(t *testing.T) {
	obj := mustObject(t, `{"i": 10, "f": 12.5, "s": "1", "sf": "0.25", "word": "x", "inf": "Inf"}`)

	assert.Equal(t, sql.NullFloat64{Float64: 10, Valid: true}, obj.NullFloat64("i"))
	assert.Equal(t, sql.NullFloat64{Float64: 12.5, Valid: true}, obj.NullFloat64("f"))
	assert.Equal(t, sql.NullFloat64{Float64: 1, Valid: true}, obj.NullFloat64("s"))
	assert.Equal(t, sql.NullFloat64{Float64: 0.25, Valid: true}, obj.NullFloat64("sf"))
	assert.False(t, obj.NullFloat64("word").Valid)
	assert.False(t, obj.NullFloat64("inf").Valid)
}

func TestBoolOr(t *testing.T) {
	obj := mustObject(t, `{"t": true, "f": false, "n": null, "s": "true"}`)

	assert.True(t, obj.BoolOr("t", false))
	assert.False(t, obj.BoolOr("f", true))
	assert.False(t, obj.BoolOr("n", false))
	assert.True(t, obj.BoolOr("n", true))
	assert.False(t, obj.BoolOr("s", false))
	assert.False(t, obj.BoolOr("missing", false))
}

func TestParseTime(t *testing.T) {
	utc := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	plusOne := time.FixedZone("", 3600)

	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-03-05T14:30:00Z", utc, true},
		{"2024-03-05T14:30:00.000Z", utc, true},
		{"2024-03-05T15:30:00+01:00", time.Date(2024, 3, 5, 15, 30, 0, 0, plusOne), true},
		{"2024-03-05T14:30:00", utc, true},
		{"2024-03-05 14:30:00", utc, true},
		{"2024-03-05T14:30", utc, true},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-05T15:30+01:00", time.Date(2024, 3, 5, 15, 30, 0, 0, plusOne), true},
		{"2024-03-05T15:30+0100", time.Date(2024, 3, 5, 15, 30, 0, 0, plusOne), true},
		{"2024-03-05T15:30:00.123+0100", time.Date(2024, 3, 5, 15, 30, 0, 123000000, plusOne), true},
		{"2024-03-05T15:30:00+01", time.Date(2024, 3, 5, 15, 30, 0, 0, plusOne), true},
		{"2024-03-05T14", time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC), true},
		{"20240305T143000", utc, true},
		{"20240305T143000Z", utc, true},
		{"20240305T153000+0100", time.Date(2024, 3, 5, 15, 30, 0, 0, plusOne), true},
		{"20240305 143000", utc, true},
		{"20240305T1430", utc, true},
		{"20240305", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"  2024-03-05T14:30:00Z ", utc, true},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, false},
		{"2024-13-05T14:30:00Z", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTime(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNullTime(t *testing.T) {
	obj := mustObject(t, `{"placedAt": "2024-03-05T14:30:00Z", "bad": "not-a-date", "num": 17}`)

	got := obj.NullTime("placedAt")
	require.True(t, got.Valid)
	assert.Equal(t, 2024, got.Time.Year())

	assert.False(t, obj.NullTime("bad").Valid)
	assert.False(t, obj.NullTime("num").Valid)
	assert.False(t, obj.NullTime("missing").Valid)
}
