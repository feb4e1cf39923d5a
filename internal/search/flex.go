package search

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// FlexKind says which JSON type a FlexValue was decoded from.
type FlexKind int

const (
	FlexAbsent FlexKind = iota
	FlexNull
	FlexNumber
	FlexString
	FlexBool
	FlexOther // object or array
)

// FlexValue holds a loosely typed field. The instant answer API sends image
// sizes as numbers, strings or empty strings depending on the source, and
// ImageIsLogo as a number or a bool.
type FlexValue struct {
	Kind FlexKind
	Num  float64
	Str  string
	Bool bool
	Raw  json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *FlexValue) UnmarshalJSON(data []byte) error {
	*v = FlexFromGJSON(gjson.ParseBytes(bytes.TrimSpace(data)))
	if v.Kind == FlexOther {
		v.Raw = append(json.RawMessage(nil), data...)
	}
	return nil
}

// MarshalJSON implements json.Marshaler; absent values encode as null.
func (v FlexValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case FlexNumber:
		return []byte(strconv.FormatFloat(v.Num, 'f', -1, 64)), nil
	case FlexString:
		return json.Marshal(v.Str)
	case FlexBool:
		return json.Marshal(v.Bool)
	case FlexOther:
		if len(v.Raw) > 0 {
			return v.Raw, nil
		}
	}
	return []byte("null"), nil
}

// FlexFromGJSON converts a gjson result into a FlexValue.
func FlexFromGJSON(r gjson.Result) FlexValue {
	if !r.Exists() {
		return FlexValue{Kind: FlexAbsent}
	}
	switch r.Type {
	case gjson.Null:
		return FlexValue{Kind: FlexNull}
	case gjson.Number:
		return FlexValue{Kind: FlexNumber, Num: r.Num}
	case gjson.String:
		return FlexValue{Kind: FlexString, Str: r.Str}
	case gjson.True, gjson.False:
		return FlexValue{Kind: FlexBool, Bool: r.Bool()}
	default:
		return FlexValue{Kind: FlexOther, Raw: json.RawMessage(r.Raw)}
	}
}

// Present reports whether the field carried a non-null value.
func (v FlexValue) Present() bool {
	return v.Kind != FlexAbsent && v.Kind != FlexNull
}

// Int returns the value as a non-negative integer. Every non-numeric variant,
// as well as negative or fractional numbers, yields 0.
func (v FlexValue) Int() int {
	if v.Kind != FlexNumber {
		return 0
	}
	if v.Num < 0 || v.Num != math.Trunc(v.Num) || v.Num > math.MaxInt32 {
		return 0
	}
	return int(v.Num)
}

// String returns the text of a string variant and "" otherwise.
func (v FlexValue) String() string {
	if v.Kind == FlexString {
		return v.Str
	}
	return ""
}
