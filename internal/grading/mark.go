// Package grading computes component averages and the final approval result
// of a student. Everything here is a pure projection over the records handed
// in by the caller: no I/O, no logging and no state kept between calls.
package grading

import (
	"bytes"
	"encoding/json"
)

const (
	MinMark = 0.0
	MaxMark = 10.0
)

// Mark is either Absent (nothing recorded) or a Value in [0,10].
// The zero value is Absent, so an explicit 0.0 must be built with Value.
type Mark struct {
	value   float64
	present bool
}

func Absent() Mark {
	return Mark{}
}

func Value(v float64) Mark {
	return Mark{value: clamp(v), present: true}
}

// MarkFromPtr converts a nullable column into a Mark.
func MarkFromPtr(v *float64) Mark {
	if v == nil {
		return Absent()
	}
	return Value(*v)
}

func (m Mark) IsAbsent() bool {
	return !m.present
}

func (m Mark) Float() (float64, bool) {
	return m.value, m.present
}

// Or returns the value, or def when the mark is Absent.
func (m Mark) Or(def float64) float64 {
	if !m.present {
		return def
	}
	return m.value
}

// Ptr converts back into a nullable column value.
func (m Mark) Ptr() *float64 {
	if !m.present {
		return nil
	}
	v := m.value
	return &v
}

func (m Mark) MarshalJSON() ([]byte, error) {
	if !m.present {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

func (m *Mark) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = Absent()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Value(v)
	return nil
}

func clamp(v float64) float64 {
	if v < MinMark {
		return MinMark
	}
	if v > MaxMark {
		return MaxMark
	}
	return v
}
