package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NumericInput is a measurement submitted by a client. Set records that the key was present;
// Value is nil when the submitted value could not be read as a finite number.
type NumericInput struct {
	Set   bool
	Value *float64
}

// Number builds a present input holding v.
func Number(v float64) NumericInput {
	return NumericInput{Set: true, Value: &v}
}

// UnmarshalJSON never fails: JSON numbers and numeric strings are kept, anything else becomes null.
func (n *NumericInput) UnmarshalJSON(data []byte) error {
	n.Set = true
	n.Value = coerceNumber(data)
	return nil
}

// MarshalJSON renders the coerced value.
func (n NumericInput) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// ParseNumber applies the same rule to a raw form value.
func ParseNumber(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func coerceNumber(data []byte) *float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		return ParseNumber(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return ParseNumber(string(data))
	default:
		return nil
	}
}
