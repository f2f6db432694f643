package vm

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Value is anything a process can hold on its stack, in its locals or in a mailbox.
// Concrete values are nil, bool, int64, float64, string, []Value and map[string]Value.
type Value = any

var errNotNumeric = errors.New("operand is not a number")

// ValueFromJSON converts a parsed JSON document into a Value.
// Integral numbers become int64, every other number becomes float64.
func ValueFromJSON(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		if !strings.ContainsAny(r.Raw, ".eE") {
			if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
				return i
			}
		}
		return r.Float()
	case gjson.String:
		return r.String()
	}

	if r.IsArray() {
		items := r.Array()
		out := make([]Value, 0, len(items))
		for _, item := range items {
			out = append(out, ValueFromJSON(item))
		}
		return out
	}
	if r.IsObject() {
		out := make(map[string]Value)
		r.ForEach(func(key, value gjson.Result) bool {
			out[key.String()] = ValueFromJSON(value)
			return true
		})
		return out
	}
	return nil
}

// Normalize converts Go numeric and container types into the canonical Value kinds.
func Normalize(v any) Value {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case Address:
		return int64(t)
	case MonitorRef:
		return int64(t)
	case float32:
		return float64(t)
	case []any:
		out := make([]Value, len(t))
		for i := range t {
			out[i] = Normalize(t[i])
		}
		return out
	case map[string]any:
		out := make(map[string]Value, len(t))
		for k, item := range t {
			out[k] = Normalize(item)
		}
		return out
	}
	return v
}

// Format renders a Value the way PRINT writes it.
func Format(v Value) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case []Value:
		parts := make([]string, len(t))
		for i := range t {
			parts[i] = Format(t[i])
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]Value:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + Format(t[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprint(v)
}

// Truthy reports whether v counts as true for conditional jumps.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	case []Value:
		return len(t) > 0
	case map[string]Value:
		return len(t) > 0
	}
	return true
}

// Equal compares two values, treating int64 and float64 as the same numeric domain.
func Equal(a, b Value) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

// ToInt returns v as an int64 when it holds an integral number.
func ToInt(v Value) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return int64(t), true
		}
	}
	return 0, false
}

func toFloat(v Value) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

func arithmetic(op Opcode, a, b Value) (Value, error) {
	if op == OpAdd {
		switch at := a.(type) {
		case string:
			return at + Format(b), nil
		case []Value:
			if bt, ok := b.([]Value); ok {
				out := make([]Value, 0, len(at)+len(bt))
				return append(append(out, at...), bt...), nil
			}
		}
	}

	ai, aInt := a.(int64)
	bi, bInt := b.(int64)
	if aInt && bInt {
		switch op {
		case OpAdd:
			return ai + bi, nil
		case OpSub:
			return ai - bi, nil
		case OpMul:
			return ai * bi, nil
		case OpDiv:
			if bi == 0 {
				return nil, errors.New("division by zero")
			}
			return ai / bi, nil
		case OpMod:
			if bi == 0 {
				return nil, errors.New("division by zero")
			}
			return ai % bi, nil
		}
	}

	af, ok := toFloat(a)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, errNotNumeric)
	}
	bf, ok := toFloat(b)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, errNotNumeric)
	}
	switch op {
	case OpAdd:
		return af + bf, nil
	case OpSub:
		return af - bf, nil
	case OpMul:
		return af * bf, nil
	case OpDiv:
		if bf == 0 {
			return nil, errors.New("division by zero")
		}
		return af / bf, nil
	case OpMod:
		if bf == 0 {
			return nil, errors.New("division by zero")
		}
		return math.Mod(af, bf), nil
	}
	return nil, fmt.Errorf("%s is not an arithmetic opcode", op)
}

func compare(op Opcode, a, b Value) (bool, error) {
	var c int
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			return false, fmt.Errorf("%s: cannot compare string with %T", op, b)
		}
		c = strings.Compare(as, bs)
	} else {
		af, ok := toFloat(a)
		if !ok {
			return false, fmt.Errorf("%s: %w", op, errNotNumeric)
		}
		bf, ok := toFloat(b)
		if !ok {
			return false, fmt.Errorf("%s: %w", op, errNotNumeric)
		}
		switch {
		case af < bf:
			c = -1
		case af > bf:
			c = 1
		}
	}

	switch op {
	case OpLt:
		return c < 0, nil
	case OpGt:
		return c > 0, nil
	case OpLte:
		return c <= 0, nil
	case OpGte:
		return c >= 0, nil
	}
	return false, fmt.Errorf("%s is not a comparison opcode", op)
}
