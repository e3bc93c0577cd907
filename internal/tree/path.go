package tree

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
)

// Get returns the value at a dotted path ("amounts.subtotal").
// Returns Null{} if any segment is missing, null, or not an object.
func (o Object) Get(path string) Value {
	var cur Value = o
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(Object)
		if !ok || obj == nil {
			return Null{}
		}
		next, ok := obj[key]
		if !ok || next == nil {
			return Null{}
		}
		cur = next
	}
	return cur
}

// Object returns the object at path, or false if the value is not an object.
func (o Object) Object(path string) (Object, bool) {
	obj, ok := o.Get(path).(Object)
	return obj, ok
}

// Array returns the array at path. Missing or non-array values yield nil,
// which ranges as empty.
func (o Object) Array(path string) Array {
	arr, _ := o.Get(path).(Array)
	return arr
}

// Present reports whether the value at path is set and non-empty.
// null, false, 0, "", [] and {} are all treated as not present.
func (o Object) Present(path string) bool {
	return Truthy(o.Get(path))
}

// Truthy reports whether v carries content.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case Bool:
		return bool(val)
	case Int:
		return val != 0
	case Float:
		return val != 0
	case String:
		return val != ""
	case Array:
		return len(val) > 0
	case Object:
		return len(val) > 0
	default:
		return false
	}
}

// NullString returns the value at path as text.
// Numbers and booleans are formatted; arrays, objects and null are invalid.
func (o Object) NullString(path string) sql.NullString {
	s, ok := Text(o.Get(path))
	return sql.NullString{String: s, Valid: ok}
}

// Text formats a scalar value as a string.
func Text(v Value) (string, bool) {
	switch val := v.(type) {
	case String:
		return string(val), true
	case Int:
		return strconv.FormatInt(int64(val), 10), true
	case Float:
		return strconv.FormatFloat(float64(val), 'f', -1, 64), true
	case Bool:
		return strconv.FormatBool(bool(val)), true
	default:
		return "", false
	}
}

// NullInt64 returns the value at path as an integer.
// Floats, and numeric strings, are accepted only when they hold an integral value.
func (o Object) NullInt64(path string) sql.NullInt64 {
	switch val := o.Get(path).(type) {
	case Int:
		return sql.NullInt64{Int64: int64(val), Valid: true}
	case Float:
		return integral(float64(val))
	case String:
		s := strings.TrimSpace(string(val))
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return sql.NullInt64{Int64: n, Valid: true}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return integral(f)
		}
	}
	return sql.NullInt64{}
}

func integral(f float64) sql.NullInt64 {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return sql.NullInt64{Int64: int64(f), Valid: true}
	}
	return sql.NullInt64{}
}

// NullFloat64 returns the numeric value at path. Numeric strings are parsed.
func (o Object) NullFloat64(path string) sql.NullFloat64 {
	switch val := o.Get(path).(type) {
	case Int:
		return sql.NullFloat64{Float64: float64(val), Valid: true}
	case Float:
		return sql.NullFloat64{Float64: float64(val), Valid: true}
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(val)), 64)
		if err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return sql.NullFloat64{Float64: f, Valid: true}
		}
	}
	return sql.NullFloat64{}
}

// BoolOr returns the boolean at path, or def if absent or not a boolean.
func (o Object) BoolOr(path string, def bool) bool {
	if b, ok := o.Get(path).(Bool); ok {
		return bool(b)
	}
	return def
}
