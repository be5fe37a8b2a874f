package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	apperrors "readiness-workers/internal/common/errors"
)

// maxExactInt is the largest magnitude a float64 holds without losing integers.
const maxExactInt = 1 << 53

// Decode unmarshals job variables into v. Integral numbers written as 7.0 or
// 1e1 are accepted for integer fields. A value that still does not fit its
// field is a *errors.ValidationError naming the field path; malformed JSON is
// a parse error.
func Decode(data []byte, v interface{}) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return apperrors.NewParseError(err)
	}

	normalized, nerr := normalizeNumbers(data)
	if nerr != nil {
		return apperrors.NewParseError(nerr)
	}
	if err = json.Unmarshal(normalized, v); err == nil {
		return nil
	}
	if errors.As(err, &typeErr) {
		return typeError(typeErr)
	}
	return apperrors.NewParseError(err)
}

func typeError(e *json.UnmarshalTypeError) error {
	field := e.Field
	if field == "" {
		field = "variables"
	}
	switch e.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return apperrors.NewValidationError(field, "must be a whole number within range")
	case reflect.Float32, reflect.Float64:
		return apperrors.NewValidationError(field, "must be a number")
	case reflect.Struct, reflect.Map:
		return apperrors.NewValidationError(field, "must be an object")
	default:
		return apperrors.NewValidationError(field, "must be of type "+e.Type.String())
	}
}

// normalizeNumbers rewrites integral non-integer literals such as 7.0 or 1e1
// to their integer form.
func normalizeNumbers(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return json.Marshal(rewriteNumbers(doc))
}

func rewriteNumbers(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, item := range t {
			t[k] = rewriteNumbers(item)
		}
		return t
	case []interface{}:
		for i, item := range t {
			t[i] = rewriteNumbers(item)
		}
		return t
	case json.Number:
		s := t.String()
		if !strings.ContainsAny(s, ".eE") {
			return t
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactInt {
			return t
		}
		return json.Number(strconv.FormatInt(int64(f), 10))
	default:
		return v
	}
}
