package generators

import (
	"encoding/json"
	"math"
)

// attributeOrder fixes the order attributes are written in.
var attributeOrder = []string{"size", "min", "max", "digits", "format", "expression", "dataType", "example", "regex"}

// RandomString generates an alphanumeric string of Size characters.
type RandomString struct{ Size int }

func (RandomString) Type() string                 { return "RandomString" }
func (g RandomString) Attributes() map[string]any { return map[string]any{"size": g.Size} }

// RandomInt generates an integer in [Min, Max].
type RandomInt struct{ Min, Max int64 }

// DefaultRandomInt covers the non-negative int32 range.
func DefaultRandomInt() RandomInt { return RandomInt{Min: 0, Max: math.MaxInt32} }

func (RandomInt) Type() string { return "RandomInt" }
func (g RandomInt) Attributes() map[string]any {
	return map[string]any{"min": g.Min, "max": g.Max}
}

// RandomDecimal generates a decimal with Digits digits.
type RandomDecimal struct{ Digits int }

func (RandomDecimal) Type() string                 { return "RandomDecimal" }
func (g RandomDecimal) Attributes() map[string]any { return map[string]any{"digits": g.Digits} }

// RandomHexadecimal generates a hex string with Digits digits.
type RandomHexadecimal struct{ Digits int }

func (RandomHexadecimal) Type() string { return "RandomHexadecimal" }
func (g RandomHexadecimal) Attributes() map[string]any {
	return map[string]any{"digits": g.Digits}
}

// UUID generates a random UUID.
type UUID struct{}

func (UUID) Type() string               { return "Uuid" }
func (UUID) Attributes() map[string]any { return nil }

// RandomBoolean generates true or false.
type RandomBoolean struct{}

func (RandomBoolean) Type() string               { return "RandomBoolean" }
func (RandomBoolean) Attributes() map[string]any { return nil }

// Date generates the current date, optionally shifted by Expression
// (e.g. "+1 day"), rendered with Format.
type Date struct{ Format, Expression string }

func (Date) Type() string                 { return "Date" }
func (g Date) Attributes() map[string]any { return temporalAttrs(g.Format, g.Expression) }

// Time generates the current time; see Date.
type Time struct{ Format, Expression string }

func (Time) Type() string                 { return "Time" }
func (g Time) Attributes() map[string]any { return temporalAttrs(g.Format, g.Expression) }

// DateTime generates the current date-time; see Date.
type DateTime struct{ Format, Expression string }

func (DateTime) Type() string                 { return "DateTime" }
func (g DateTime) Attributes() map[string]any { return temporalAttrs(g.Format, g.Expression) }

func temporalAttrs(format, expression string) map[string]any {
	m := map[string]any{}
	if format != "" {
		m["format"] = format
	}
	if expression != "" {
		m["expression"] = expression
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// DataType is the declared type of a provider-state injected value.
type DataType string

const (
	DataString  DataType = "STRING"
	DataInteger DataType = "INTEGER"
	DataDecimal DataType = "DECIMAL"
	DataFloat   DataType = "FLOAT"
	DataBoolean DataType = "BOOLEAN"
	DataRaw     DataType = "RAW"
)

// DataTypeOf infers the data type from an example value.
func DataTypeOf(v any) DataType {
	switch t := v.(type) {
	case string:
		return DataString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return DataInteger
	case float32:
		return DataFloat
	case float64:
		return DataDecimal
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return DataInteger
		}
		return DataDecimal
	case bool:
		return DataBoolean
	default:
		return DataRaw
	}
}

// ProviderState injects a value from provider state via Expression, e.g.
// "${userId}".
type ProviderState struct {
	Expression string
	DataType   DataType
}

func (ProviderState) Type() string { return "ProviderState" }
func (g ProviderState) Attributes() map[string]any {
	return map[string]any{"expression": g.Expression, "dataType": string(g.DataType)}
}

// MockServerURL rewrites Example to point at the running mock server; Regex
// locates the part of the URL to keep.
type MockServerURL struct{ Example, Regex string }

func (MockServerURL) Type() string { return "MockServerURL" }
func (g MockServerURL) Attributes() map[string]any {
	return map[string]any{"example": g.Example, "regex": g.Regex}
}
