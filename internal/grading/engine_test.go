package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func full(v float64) Quarters {
	return q(Value(v), Value(v), Value(v), Value(v))
}

func mandatory(name string, quarters Quarters) ComponentGrade {
	return ComponentGrade{Name: name, Quarters: quarters}
}

func optional(name string, quarters Quarters) ComponentGrade {
	return ComponentGrade{Name: name, Optional: true, Quarters: quarters}
}

func middleSchool(grade string) StudentContext {
	return StudentContext{
		Attendance: 90,
		Enrollment: EnrollmentActive,
		Level:      LevelFundamental,
		GradeLabel: grade,
	}
}

func dependencyRules() ApprovalRules {
	rules := DefaultApprovalRules()
	rules.DependencyEnabled = true
	rules.MaxDependencyComponents = 2
	return rules
}

func TestEvaluate_AllZeroMandatoryFails(t *testing.T) {
	components := []ComponentGrade{
		mandatory("Matemática", full(0)),
		mandatory("Português", full(0)),
		mandatory("Ciências", full(0)),
	}

	res := (&Engine{}).Evaluate(components, middleSchool("7º Ano"), DefaultApprovalRules())

	assert.Equal(t, VerdictFailed, res.Verdict)
	assert.Len(t, res.Failed, len(components))
	assert.Equal(t, []string{"Matemática", "Português", "Ciências"}, res.Failed)
}

func TestEvaluate_MandatoryAbsentFails(t *testing.T) {
	components := []ComponentGrade{
		mandatory("Matemática", full(8)),
		mandatory("História", q()),
		mandatory("Geografia", full(7)),
	}

	res := (&Engine{}).Evaluate(components, middleSchool("7º Ano"), DefaultApprovalRules())

	assert.Equal(t, VerdictFailed, res.Verdict)
	assert.Equal(t, []string{"História"}, res.Failed)
	assert.Contains(t, res.Rationale, "História")
}

func TestEvaluate_OptionalAbsentIgnored(t *testing.T) {
	components := []ComponentGrade{
		mandatory("Matemática", full(8)),
		optional("Ensino Religioso", q()),
	}

	res := (&Engine{}).Evaluate(components, middleSchool("7º Ano"), DefaultApprovalRules())

	assert.Equal(t, VerdictApproved, res.Verdict)
	assert.Empty(t, res.Failed)
}

func TestEvaluate_OptionalWithGradeCounts(t *testing.T) {
	components := []ComponentGrade{
		mandatory("Matemática", full(8)),
		optional("Ensino Religioso", full(3)),
	}

	res := (&Engine{}).Evaluate(components, middleSchool("7º Ano"), DefaultApprovalRules())

	assert.Equal(t, VerdictFailed, res.Verdict)
	assert.Equal(t, []string{"Ensino Religioso"}, res.Failed)
}

func TestEvaluate_OptionalExplicitZeroCounts(t *testing.T) {
	components := []ComponentGrade{
		mandatory("Matemática", full(8)),
		optional("Ensino Religioso", full(0)),
	}

	res := (&Engine{}).Evaluate(components, middleSchool("7º Ano"), DefaultApprovalRules())

	assert.Equal(t, VerdictFailed, res.Verdict)
	assert.Equal(t, []string{"Ensino Religioso"}, res.Failed)
}

func TestEvaluate_NothingRecorded(t *testing.T) {
	components := []ComponentGrade{
		mandatory("Matemática", q()),
		mandatory("Português", q()),
		optional("Ensino Religioso", q()),
	}

	res := (&Engine{}).Evaluate(components, middleSchool("7º Ano"), DefaultApprovalRules())

	assert.Equal(t, VerdictInProgress, res.Verdict)
	assert.Empty(t, res.Failed)
	require.Len(t, res.Components, 3)
	for _, c := range res.Components {
		assert.Equal(t, StatusInProgress, c.Status)
	}
}

func TestEvaluate_RecoveryOnlyCountsAsRecorded(t *testing.T) {
	components := []ComponentGrade{
		{Name: "Matemática", Recovery: Recovery{Final: Value(6)}},
	}

	res := (&Engine{}).Evaluate(components, middleSchool("7º Ano"), DefaultApprovalRules())

	assert.Equal(t, VerdictFailed, res.Verdict)
	assert.Equal(t, []string{"Matemática"}, res.Failed)
}

func TestEvaluate_EarlyElementaryNeverDependency(t *testing.T) {
	components := []ComponentGrade{
		mandatory("Matemática", full(3)),
		mandatory("Português", full(8)),
	}

	res := (&Engine{}).Evaluate(components, middleSchool("5º Ano"), dependencyRules())

	assert.Equal(t, VerdictFailed, res.Verdict)
	assert.Equal(t, []string{"Matemática"}, res.Failed)
}

func TestEvaluate_FinalGradeOnlyInDependency(t *testing.T) {
	components := []ComponentGrade{
		mandatory("Matemática", full(3)),
		mandatory("Português", full(4)),
		mandatory("História", full(8)),
	}

	res := (&Engine{}).Evaluate(components, middleSchool("9º Ano"), dependencyRules())

	assert.Equal(t, VerdictInDependency, res.Verdict)
	assert.NotEqual(t, VerdictApprovedWithDependency, res.Verdict)
	assert.Equal(t, []string{"Matemática", "Português"}, res.Failed)
}

func TestEvaluate_FullDependency(t *testing.T) {
	components := []ComponentGrade{
		mandatory("Matemática", full(3)),
		mandatory("Português", full(8)),
	}

	res := (&Engine{}).Evaluate(components, middleSchool("7º Ano"), dependencyRules())
	assert.Equal(t, VerdictApprovedWithDependency, res.Verdict)

	rules := dependencyRules()
	rules.OnlyDependency = true
	res = (&Engine{}).Evaluate(components, middleSchool("7º Ano"), rules)
	assert.Equal(t, VerdictInDependency, res.Verdict)
}

func TestEvaluate_DependencyFallsBackToFailed(t *testing.T) {
	components := []ComponentGrade{
		mandatory("Matemática", full(3)),
		mandatory("Português", full(3)),
		mandatory("História", full(3)),
	}

	t.Run("over the maximum", func(t *testing.T) {
		res := (&Engine{}).Evaluate(components, middleSchool("7º Ano"), dependencyRules())
		assert.Equal(t, VerdictFailed, res.Verdict)
		assert.Len(t, res.Failed, 3)
	})

	t.Run("dependency disabled", func(t *testing.T) {
		res := (&Engine{}).Evaluate(components[:1], middleSchool("7º Ano"), DefaultApprovalRules())
		assert.Equal(t, VerdictFailed, res.Verdict)
	})

	t.Run("insufficient attendance", func(t *testing.T) {
		sc := middleSchool("7º Ano")
		sc.Attendance = 60
		res := (&Engine{}).Evaluate(components[:1], sc, dependencyRules())
		assert.Equal(t, VerdictFailed, res.Verdict)
		assert.Contains(t, res.Rationale, "frequência")
	})
}

func TestEvaluate_EarlyChildhoodAutomaticPass(t *testing.T) {
	infantil := ComponentGrade{
		Name:       "Linguagem Oral",
		Conceptual: true,
		Quarters:   q(Value(5), Value(10), Value(7.5), Value(0)),
	}

	res := (&Engine{}).Evaluate([]ComponentGrade{infantil}, StudentContext{
		Attendance:     40,
		Level:          LevelEarlyChildhood,
		GradeLabel:     "Pré II",
		EarlyChildhood: true,
	}, DefaultApprovalRules())

	assert.Equal(t, VerdictApproved, res.Verdict)
	require.Len(t, res.Components, 1)
	assert.Equal(t, Value(10), res.Components[0].Average)
	assert.Equal(t, StatusApproved, res.Components[0].Status)

	lowConcepts := infantil
	lowConcepts.Quarters = full(0)
	res = (&Engine{Attendance: MinimumAttendanceRule{}}).Evaluate([]ComponentGrade{lowConcepts}, StudentContext{
		Attendance:     10,
		Level:          LevelEarlyChildhood,
		EarlyChildhood: true,
	}, DefaultApprovalRules())
	assert.Equal(t, VerdictApproved, res.Verdict)
	assert.Empty(t, res.Failed)
}

func TestEvaluate_ConceptualComponentDoesNotBlock(t *testing.T) {
	components := []ComponentGrade{
		mandatory("Matemática", full(8)),
		{Name: "Projeto de Vida", Conceptual: true, Quarters: full(0)},
	}

	res := (&Engine{}).Evaluate(components, middleSchool("7º Ano"), DefaultApprovalRules())

	assert.Equal(t, VerdictApproved, res.Verdict)
	assert.Empty(t, res.Failed)
}

func TestEvaluate_AttendanceRule(t *testing.T) {
	components := []ComponentGrade{mandatory("Matemática", full(8))}
	sc := middleSchool("7º Ano")
	sc.Attendance = 50

	res := (&Engine{Attendance: AttendanceNotEnforced{}}).Evaluate(components, sc, DefaultApprovalRules())
	assert.Equal(t, VerdictApproved, res.Verdict)

	res = (&Engine{Attendance: MinimumAttendanceRule{}}).Evaluate(components, sc, DefaultApprovalRules())
	assert.Equal(t, VerdictFailed, res.Verdict)
	assert.Empty(t, res.Failed)
	assert.Contains(t, res.Rationale, "frequência")
}

func TestEvaluate_UsesResolvedAverage(t *testing.T) {
	components := []ComponentGrade{
		{
			Name:     "Matemática",
			Quarters: full(4),
			Recovery: Recovery{Final: Value(7)},
		},
	}

	res := (&Engine{}).Evaluate(components, middleSchool("7º Ano"), DefaultApprovalRules())

	assert.Equal(t, VerdictApproved, res.Verdict)
	assert.InDelta(t, 5.5, res.Components[0].Average.Or(0), 1e-9)
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	components := []ComponentGrade{
		{Name: "Matemática", Quarters: q(Value(2), Value(4), Value(8), Value(8)), Recovery: Recovery{Semester1: Value(7)}},
	}
	before := components[0]

	(&Engine{}).Evaluate(components, middleSchool("7º Ano"), DefaultApprovalRules())

	assert.Equal(t, before, components[0])
}

func TestEvaluate_ComponentStatusMatchesEvaluateComponent(t *testing.T) {
	rules := DefaultApprovalRules()
	cases := []ComponentGrade{
		mandatory("Matemática", full(4)),
		{Name: "Português", Quarters: full(4), Recovery: Recovery{Final: Value(4)}},
		mandatory("Ciências", full(0)),
		mandatory("História", q(Value(7), Value(7))),
		{Name: "Arte", Conceptual: true, Quarters: q(Value(5))},
	}

	res := (&Engine{}).Evaluate(cases, middleSchool("7º Ano"), rules)
	require.Len(t, res.Components, len(cases))
	for i, c := range cases {
		want := EvaluateComponent(c.Quarters, c.Recovery, c.Conceptual, rules.PassingGrade)
		assert.Equal(t, want.Status, res.Components[i].Status, c.Name)
		assert.Equal(t, want.Average, res.Components[i].Average, c.Name)
	}
	assert.Equal(t, StatusRecoveryNeeded, res.Components[0].Status)
	assert.Equal(t, StatusFailedByGrade, res.Components[1].Status)
}
