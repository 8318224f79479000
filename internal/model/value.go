package model

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the dynamic type carried by a Value.
type ValueKind int

const (
	// KindNull marks an empty or missing cell.
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindList
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a loosely-typed table cell resolved into a tagged value. Raw keeps
// the cell text exactly as read so comparisons across kinds stay verbatim.
type Value struct {
	Kind ValueKind
	Raw  string
	Str  string
	Num  float64
	Bool bool
	List []Value
}

// ParseValue infers a Value from a cell. Empty cells are null; numbers and
// the literals true/false (any case) become typed scalars; a bracketed cell
// that parses as a list literal becomes a list; everything else is a string.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{Kind: KindNull, Raw: raw}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) {
		return Value{Kind: KindNumber, Raw: raw, Num: f}
	}
	switch strings.ToLower(s) {
	case "true":
		return Value{Kind: KindBool, Raw: raw, Bool: true}
	case "false":
		return Value{Kind: KindBool, Raw: raw, Bool: false}
	case "nan":
		return Value{Kind: KindNull, Raw: raw}
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		if list, err := ParseList(s); err == nil {
			return list
		}
	}
	return Value{Kind: KindString, Raw: raw, Str: s}
}

// StringValue wraps s as a string value without inference.
func StringValue(s string) Value {
	return Value{Kind: KindString, Raw: s, Str: s}
}

// IsNull reports whether the value is empty.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Equal compares two values. Values of the same kind compare by content;
// values of different kinds fall back to their raw cell text. Null is never
// equal to anything, including another null.
func (v Value) Equal(o Value) bool {
	if v.IsNull() || o.IsNull() {
		return false
	}
	if v.Kind != o.Kind {
		return strings.TrimSpace(v.Raw) == strings.TrimSpace(o.Raw)
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindNumber:
		return v.Num == o.Num
	case KindBool:
		return v.Bool == o.Bool
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Float coerces the value to a float64. Numbers convert directly and string
// cells are parsed; anything else reports false.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Contains reports whether a list value holds an element equal to x.
func (v Value) Contains(x Value) bool {
	for _, el := range v.List {
		if el.Equal(x) {
			return true
		}
	}
	return false
}

// String renders the value for explanations and reports.
func (v Value) String() string {
	if v.Raw != "" {
		return strings.TrimSpace(v.Raw)
	}
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return FormatNumber(v.Num)
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case KindList:
		parts := make([]string, len(v.List))
		for i, el := range v.List {
			parts[i] = el.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}

// FormatNumber renders f without a trailing ".0" for whole numbers.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
