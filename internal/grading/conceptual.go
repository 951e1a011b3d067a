package grading

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Concept is a developmental concept used in early-childhood education.
type Concept string

const (
	ConceptOD Concept = "OD" // objetivo desenvolvido
	ConceptDP Concept = "DP" // desenvolvido parcialmente
	ConceptND Concept = "ND" // não desenvolvido
	ConceptNT Concept = "NT" // não trabalhado
)

var conceptValues = map[Concept]float64{
	ConceptOD: 10.0,
	ConceptDP: 7.5,
	ConceptND: 5.0,
	ConceptNT: 0.0,
}

// ordered from highest anchor to lowest
var conceptOrder = []Concept{ConceptOD, ConceptDP, ConceptND, ConceptNT}

var ErrInvalidConcept = errors.New("invalid concept")

func (c Concept) Value() (float64, bool) {
	v, ok := conceptValues[c]
	return v, ok
}

// ParseConcept accepts a concept code or its numeric equivalent.
// Blank input is Absent.
func ParseConcept(s string) (Mark, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Absent(), nil
	}
	if v, ok := Concept(strings.ToUpper(s)).Value(); ok {
		return Value(v), nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return Absent(), fmt.Errorf("%w: %q", ErrInvalidConcept, s)
	}
	if v < MinMark || v > MaxMark {
		return Absent(), fmt.Errorf("%w: %q out of range", ErrInvalidConcept, s)
	}
	return Value(v), nil
}

// ConceptFor returns the highest concept whose anchor does not exceed the mark.
func ConceptFor(m Mark) (Concept, bool) {
	v, ok := m.Float()
	if !ok {
		return "", false
	}
	for _, c := range conceptOrder {
		if v >= conceptValues[c] {
			return c, true
		}
	}
	return ConceptNT, true
}

// ConceptualAverage is the best development shown across the bimesters.
func ConceptualAverage(q Quarters) Mark {
	best := Absent()
	for _, m := range q {
		v, ok := m.Float()
		if !ok {
			continue
		}
		if best.IsAbsent() || v > best.Or(0) {
			best = Value(v)
		}
	}
	return best
}

// ConceptualStatus never fails: early-childhood components are approved as
// soon as any concept has been recorded.
func ConceptualStatus(avg Mark) ComponentStatus {
	if avg.IsAbsent() {
		return StatusInProgress
	}
	return StatusApproved
}
