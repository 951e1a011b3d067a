package grading

// Quarters holds the four bimester marks in order B1..B4.
type Quarters [4]Mark

// bimester weights; B2 and B4 close a semester and weigh more.
var quarterWeights = [4]float64{2, 3, 2, 3}

const weightTotal = 10.0

// Complete reports whether every bimester has a mark.
func (q Quarters) Complete() bool {
	for _, m := range q {
		if m.IsAbsent() {
			return false
		}
	}
	return true
}

// Any reports whether at least one bimester has a mark.
func (q Quarters) Any() bool {
	for _, m := range q {
		if !m.IsAbsent() {
			return true
		}
	}
	return false
}

// WeightedAverage returns (B1*2 + B2*3 + B3*2 + B4*3) / 10.
// Absent bimesters count as zero; the result is Absent only when all four are.
func WeightedAverage(q Quarters) Mark {
	if !q.Any() {
		return Absent()
	}
	var sum float64
	for i, m := range q {
		sum += m.Or(0) * quarterWeights[i]
	}
	return Value(sum / weightTotal)
}
