package service

import (
	"context"
	"testing"

	"school_records_backend/internal/grading"
	"school_records_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gradeFixture struct {
	classes *fakeClassStore
	grades  *fakeGradeStore
	cache   *memoryCache
	svc     *GradeService
}

func newGradeFixture() *gradeFixture {
	classes := newFakeClassStore()
	classes.addClass(1, grading.LevelFundamental, "7º Ano")
	classes.addClass(2, grading.LevelEarlyChildhood, "Pré II")
	classes.addComponent(10, 1, "Matemática", false)
	classes.addComponent(11, 1, "Ensino Religioso", true)
	classes.addComponent(20, 2, "Linguagem Oral", false)
	classes.enroll(1, 1, "Ana", grading.EnrollmentActive, 90)
	classes.enroll(2, 1, "Bruno", grading.EnrollmentTransferred, 90)
	classes.enroll(3, 2, "Caio", grading.EnrollmentActive, 80)

	grades := newFakeGradeStore(classes)
	cache := newMemoryCache()
	rules := NewRulesService(&fakeRuleStore{}, testGradingConfig())
	return &gradeFixture{
		classes: classes,
		grades:  grades,
		cache:   cache,
		svc:     NewGradeService(classes, grades, rules, cache),
	}
}

func TestSaveGrade_ComputesAverageAndStatus(t *testing.T) {
	f := newGradeFixture()

	view, err := f.svc.SaveGrade(context.Background(), 1, 10, GradeEntryRequest{
		B1: ptr(4), B2: ptr(6), B3: ptr(5), B4: ptr(7),
	}, 42)
	require.NoError(t, err)

	assert.InDelta(t, 5.7, view.Evaluation.Average.Or(-1), 1e-9)
	assert.Equal(t, grading.StatusApproved, view.Evaluation.Status)
	assert.True(t, view.Evaluation.Complete)
	assert.Equal(t, "5,7", view.Display)

	stored, err := f.grades.FindByEnrollmentAndComponent(context.Background(), 1, 10)
	require.NoError(t, err)
	require.NotNil(t, stored.Average)
	assert.InDelta(t, 5.7, *stored.Average, 1e-9)
	assert.Equal(t, string(grading.StatusApproved), stored.Status)
	assert.Equal(t, uint(42), stored.UpdatedBy)
	assert.Equal(t, []uint{1}, f.cache.invalidated)
}

func TestSaveGrade_KeepsZeroApartFromAbsent(t *testing.T) {
	f := newGradeFixture()

	_, err := f.svc.SaveGrade(context.Background(), 1, 11, GradeEntryRequest{B1: ptr(0)}, 1)
	require.NoError(t, err)

	stored, err := f.grades.FindByEnrollmentAndComponent(context.Background(), 1, 11)
	require.NoError(t, err)
	require.NotNil(t, stored.B1)
	assert.Equal(t, 0.0, *stored.B1)
	assert.Nil(t, stored.B2)
	assert.Equal(t, string(grading.StatusInProgress), stored.Status)
}

func TestSaveGrade_RecoveryStatus(t *testing.T) {
	f := newGradeFixture()

	view, err := f.svc.SaveGrade(context.Background(), 1, 10, GradeEntryRequest{
		B1: ptr(3), B2: ptr(3), B3: ptr(3), B4: ptr(3),
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, grading.StatusRecoveryNeeded, view.Evaluation.Status)

	view, err = f.svc.SaveGrade(context.Background(), 1, 10, GradeEntryRequest{
		B1: ptr(3), B2: ptr(3), B3: ptr(3), B4: ptr(3), Recovery: ptr(4),
	}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, view.Evaluation.Average.Or(-1), 1e-9)
	assert.Equal(t, grading.StatusFailedByGrade, view.Evaluation.Status)
}

func TestSaveGrade_Rejections(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()

	_, err := f.svc.SaveGrade(ctx, 1, 10, GradeEntryRequest{B1: ptr(10.5)}, 1)
	assert.ErrorIs(t, err, util.ErrInvalidMark)

	_, err = f.svc.SaveGrade(ctx, 1, 10, GradeEntryRequest{RecS1: ptr(-1)}, 1)
	assert.ErrorIs(t, err, util.ErrInvalidMark)

	_, err = f.svc.SaveGrade(ctx, 99, 10, GradeEntryRequest{}, 1)
	assert.ErrorIs(t, err, util.ErrEnrollmentNotFound)

	_, err = f.svc.SaveGrade(ctx, 2, 10, GradeEntryRequest{B1: ptr(7)}, 1)
	assert.ErrorIs(t, err, util.ErrEnrollmentInactive)

	_, err = f.svc.SaveGrade(ctx, 1, 99, GradeEntryRequest{B1: ptr(7)}, 1)
	assert.ErrorIs(t, err, util.ErrComponentNotFound)

	_, err = f.svc.SaveGrade(ctx, 1, 20, GradeEntryRequest{B1: ptr(7)}, 1)
	assert.ErrorIs(t, err, util.ErrComponentNotInClass)

	assert.Empty(t, f.grades.records)
}

func TestSaveGrade_EarlyChildhoodConcepts(t *testing.T) {
	f := newGradeFixture()

	view, err := f.svc.SaveGrade(context.Background(), 3, 20, GradeEntryRequest{
		Concepts: []string{"ND", "dp", "", "OD"},
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, grading.Value(10), view.Evaluation.Average)
	assert.Equal(t, grading.StatusApproved, view.Evaluation.Status)
	assert.Equal(t, "OD", view.Display)
	assert.Nil(t, view.Record.B3)

	_, err = f.svc.SaveGrade(context.Background(), 3, 20, GradeEntryRequest{Concepts: []string{"XX"}}, 1)
	assert.ErrorIs(t, err, util.ErrInvalidMark)
}

func TestPreviewAverage_MatchesSavedAverage(t *testing.T) {
	f := newGradeFixture()
	entry := GradeEntryRequest{
		B1: ptr(2), B2: ptr(4), B3: ptr(8), B4: ptr(8),
		RecS1: ptr(7),
	}

	preview, err := f.svc.PreviewAverage(PreviewRequest{GradeEntryRequest: entry})
	require.NoError(t, err)
	saved, err := f.svc.SaveGrade(context.Background(), 1, 10, entry, 1)
	require.NoError(t, err)

	// rec_s1 replaces bimesters 1 and 2: (14+21+16+24)/10
	assert.InDelta(t, 7.5, preview.Evaluation.Average.Or(-1), 1e-9)
	assert.Equal(t, saved.Evaluation, preview.Evaluation)
	assert.Nil(t, preview.Record)
}

func TestPreviewAverage_PartialAndPassingGrade(t *testing.T) {
	f := newGradeFixture()

	preview, err := f.svc.PreviewAverage(PreviewRequest{GradeEntryRequest: GradeEntryRequest{B1: ptr(6), B2: ptr(6)}})
	require.NoError(t, err)
	// missing bimesters weigh as zero until they are entered
	assert.InDelta(t, 3.0, preview.Evaluation.Average.Or(-1), 1e-9)
	assert.Equal(t, grading.StatusInProgress, preview.Evaluation.Status)

	preview, err = f.svc.PreviewAverage(PreviewRequest{
		GradeEntryRequest: GradeEntryRequest{B1: ptr(6), B2: ptr(6), B3: ptr(6), B4: ptr(6)},
		PassingGrade:      7,
	})
	require.NoError(t, err)
	assert.Equal(t, grading.StatusRecoveryNeeded, preview.Evaluation.Status)

	_, err = f.svc.PreviewAverage(PreviewRequest{PassingGrade: 12})
	assert.ErrorIs(t, err, util.ErrInvalidMark)

	preview, err = f.svc.PreviewAverage(PreviewRequest{})
	require.NoError(t, err)
	assert.True(t, preview.Evaluation.Average.IsAbsent())
	assert.Equal(t, "-", preview.Display)
}

func TestListEnrollmentGrades(t *testing.T) {
	f := newGradeFixture()
	ctx := context.Background()
	_, err := f.svc.SaveGrade(ctx, 1, 10, GradeEntryRequest{B1: ptr(7.5), B2: ptr(8)}, 1)
	require.NoError(t, err)

	lines, err := f.svc.ListEnrollmentGrades(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	math := lines[0]
	assert.Equal(t, "Matemática", math.Component)
	assert.Equal(t, [4]string{"7,5", "8,0", "-", "-"}, math.Bimesters)
	assert.Equal(t, grading.StatusInProgress, math.Status)

	religion := lines[1]
	assert.True(t, religion.Optional)
	assert.Equal(t, "-", religion.Average)
	assert.Equal(t, [4]string{"-", "-", "-", "-"}, religion.Bimesters)

	_, err = f.svc.ListEnrollmentGrades(ctx, 404)
	assert.ErrorIs(t, err, util.ErrEnrollmentNotFound)
}
