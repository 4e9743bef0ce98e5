package message

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// Field validators. Every handler checks its required and optional
// fields through these before touching host state, so a malformed
// request never causes a partial mutation.

func wrongType(field, want string) *Error {
	return ErrInvalidParameter(fmt.Sprintf("field %q must be %s", field, want))
}

func missing(field string) *Error {
	return ErrInvalidParameter(fmt.Sprintf("missing required field %q", field))
}

func intValue(v gjson.Result) (int64, bool) {
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
		return 0, false
	}
	return v.Int(), true
}

// RequireInt extracts a required integer field.
func RequireInt(data json.RawMessage, field string) (int64, *Error) {
	v := gjson.GetBytes(data, field)
	if !v.Exists() {
		return 0, missing(field)
	}
	n, ok := intValue(v)
	if !ok {
		return 0, wrongType(field, "an integer")
	}
	return n, nil
}

// RequireBool extracts a required boolean field.
func RequireBool(data json.RawMessage, field string) (bool, *Error) {
	v := gjson.GetBytes(data, field)
	if !v.Exists() {
		return false, missing(field)
	}
	if !v.IsBool() {
		return false, wrongType(field, "a boolean")
	}
	return v.Bool(), nil
}

// OptionalInt extracts an optional integer field. The second result
// reports presence.
func OptionalInt(data json.RawMessage, field string) (int64, bool, *Error) {
	v := gjson.GetBytes(data, field)
	if !v.Exists() {
		return 0, false, nil
	}
	n, ok := intValue(v)
	if !ok {
		return 0, false, wrongType(field, "an integer")
	}
	return n, true, nil
}

// OptionalBool extracts an optional boolean field.
func OptionalBool(data json.RawMessage, field string) (bool, bool, *Error) {
	v := gjson.GetBytes(data, field)
	if !v.Exists() {
		return false, false, nil
	}
	if !v.IsBool() {
		return false, false, wrongType(field, "a boolean")
	}
	return v.Bool(), true, nil
}

// OptionalObject extracts an optional object field as raw JSON.
func OptionalObject(data json.RawMessage, field string) (json.RawMessage, bool, *Error) {
	v := gjson.GetBytes(data, field)
	if !v.Exists() {
		return nil, false, nil
	}
	if !v.IsObject() {
		return nil, false, wrongType(field, "an object")
	}
	return json.RawMessage(v.Raw), true, nil
}

// OptionalArray extracts an optional array field. Callers validate
// the element types themselves.
func OptionalArray(data json.RawMessage, field string) ([]gjson.Result, bool, *Error) {
	v := gjson.GetBytes(data, field)
	if !v.Exists() {
		return nil, false, nil
	}
	if !v.IsArray() {
		return nil, false, wrongType(field, "an array")
	}
	return v.Array(), true, nil
}
