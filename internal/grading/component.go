package grading

// ComponentEvaluation is the computed state of one component.
type ComponentEvaluation struct {
	Average  Mark            `json:"average"`
	Status   ComponentStatus `json:"status"`
	Complete bool            `json:"complete"`
}

// EvaluateComponent resolves the average and status of one component. Grade
// entry, preview, the final result and the recompute script all call it.
func EvaluateComponent(q Quarters, rec Recovery, conceptual bool, passing float64) ComponentEvaluation {
	if conceptual {
		avg := ConceptualAverage(q)
		return ComponentEvaluation{Average: avg, Status: ConceptualStatus(avg), Complete: q.Complete()}
	}
	if passing <= 0 {
		passing = DefaultPassingGrade
	}
	avg := ResolveAverage(q, rec)
	return ComponentEvaluation{
		Average:  avg,
		Complete: q.Complete(),
		Status: Classify(ClassifyInput{
			Average:  avg,
			Complete: q.Complete(),
			// the final recovery round is open until its mark exists
			RecoveryAvailable: rec.Final.IsAbsent(),
			PassingGrade:      passing,
		}),
	}
}
