package grading

// RecoverySubstitutionThreshold is the average below which the final recovery
// mark is averaged in. It is not the passing grade.
const RecoverySubstitutionThreshold = 6.0

// Recovery holds the optional recovery marks of a component.
type Recovery struct {
	Semester1 Mark `json:"recS1"`
	Semester2 Mark `json:"recS2"`
	Final     Mark `json:"recovery"`
}

func (r Recovery) Any() bool {
	return !r.Semester1.IsAbsent() || !r.Semester2.IsAbsent() || !r.Final.IsAbsent()
}

// ResolveAverage applies semester recoveries and then the final recovery on
// top of the weighted average.
//
// A semester recovery that beats the pair's mean replaces both bimesters of
// that semester before the weighted formula is recomputed. The final recovery
// is averaged with the result when it stays below the substitution threshold.
func ResolveAverage(q Quarters, r Recovery) Mark {
	avg := WeightedAverage(q)
	if avg.IsAbsent() {
		return avg
	}

	effective := q
	if substituteSemester(&effective, 0, r.Semester1) {
		avg = WeightedAverage(effective)
	}
	if substituteSemester(&effective, 2, r.Semester2) {
		avg = WeightedAverage(effective)
	}

	final, ok := r.Final.Float()
	if ok && avg.Or(0) < RecoverySubstitutionThreshold {
		avg = Value((avg.Or(0) + final) / 2)
	}
	return avg
}

// substituteSemester replaces the pair starting at first with rec when both
// marks of the pair exist and rec is higher than their mean.
func substituteSemester(q *Quarters, first int, rec Mark) bool {
	recValue, ok := rec.Float()
	if !ok {
		return false
	}
	a, okA := q[first].Float()
	b, okB := q[first+1].Float()
	if !okA || !okB {
		return false
	}
	if recValue <= (a+b)/2 {
		return false
	}
	q[first] = rec
	q[first+1] = rec
	return true
}
