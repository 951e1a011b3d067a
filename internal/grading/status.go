package grading

type ComponentStatus string

const (
	StatusInProgress     ComponentStatus = "cursando"
	StatusApproved       ComponentStatus = "aprovado"
	StatusFailedByGrade  ComponentStatus = "reprovado_nota"
	StatusRecoveryNeeded ComponentStatus = "recuperacao"
)

const DefaultPassingGrade = 5.0

type ClassifyInput struct {
	Average  Mark
	Complete bool
	// RecoveryAvailable is decided by the caller: whether another evaluation
	// round remains for the component.
	RecoveryAvailable bool
	PassingGrade      float64
}

// Classify maps a component average to its status. Every terminal status
// requires all four bimesters to be filled in.
func Classify(in ClassifyInput) ComponentStatus {
	avg, ok := in.Average.Float()
	if !ok || !in.Complete {
		return StatusInProgress
	}
	passing := in.PassingGrade
	if passing <= 0 {
		passing = DefaultPassingGrade
	}

	switch {
	case avg >= passing:
		return StatusApproved
	case avg == 0:
		return StatusFailedByGrade
	case in.RecoveryAvailable:
		return StatusRecoveryNeeded
	default:
		return StatusFailedByGrade
	}
}
