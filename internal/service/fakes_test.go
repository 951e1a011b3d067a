package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"school_records_backend/internal/config"
	"school_records_backend/internal/grading"
	"school_records_backend/internal/model"

	"gorm.io/gorm"
)

type fakeClassStore struct {
	classes     map[uint]model.Class
	enrollments map[uint]model.Enrollment
	components  map[uint]model.CurriculumComponent
}

func newFakeClassStore() *fakeClassStore {
	return &fakeClassStore{
		classes:     map[uint]model.Class{},
		enrollments: map[uint]model.Enrollment{},
		components:  map[uint]model.CurriculumComponent{},
	}
}

func (f *fakeClassStore) addClass(id uint, level grading.EducationLevel, grade string) model.Class {
	c := model.Class{SchoolID: 1, EducationLevel: level, GradeLabel: grade, Name: grade + " A"}
	c.ID = id
	f.classes[id] = c
	return c
}

func (f *fakeClassStore) addComponent(id, classID uint, name string, optional bool) {
	c := model.CurriculumComponent{ClassID: classID, Name: name, Optional: optional, Order: int(id)}
	c.ID = id
	f.components[id] = c
}

func (f *fakeClassStore) enroll(id, classID uint, name string, status grading.EnrollmentStatus, attendance float64) {
	e := model.Enrollment{
		StudentID:  id + 100,
		ClassID:    classID,
		Status:     status,
		Attendance: attendance,
		Student:    model.Student{Name: name},
	}
	e.ID = id
	f.enrollments[id] = e
}

func (f *fakeClassStore) FindClassByID(_ context.Context, id uint) (*model.Class, error) {
	c, ok := f.classes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (f *fakeClassStore) FindEnrollmentByID(_ context.Context, id uint) (*model.Enrollment, error) {
	e, ok := f.enrollments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	e.Class = f.classes[e.ClassID]
	return &e, nil
}

func (f *fakeClassStore) ListEnrollments(_ context.Context, classID uint) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range f.enrollments {
		if e.ClassID == classID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeClassStore) ListComponents(_ context.Context, classID uint) ([]model.CurriculumComponent, error) {
	var out []model.CurriculumComponent
	for _, c := range f.components {
		if c.ClassID == classID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeClassStore) FindComponentByID(_ context.Context, id uint) (*model.CurriculumComponent, error) {
	c, ok := f.components[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

type gradeKey struct{ enrollment, component uint }

type fakeGradeStore struct {
	mu      sync.Mutex
	records map[gradeKey]model.GradeRecord
	classes *fakeClassStore
}

func newFakeGradeStore(classes *fakeClassStore) *fakeGradeStore {
	return &fakeGradeStore{records: map[gradeKey]model.GradeRecord{}, classes: classes}
}

func (f *fakeGradeStore) Upsert(_ context.Context, rec *model.GradeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[gradeKey{rec.EnrollmentID, rec.ComponentID}] = *rec
	return nil
}

func (f *fakeGradeStore) FindByEnrollmentAndComponent(_ context.Context, enrollmentID, componentID uint) (*model.GradeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[gradeKey{enrollmentID, componentID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (f *fakeGradeStore) ListByEnrollment(_ context.Context, enrollmentID uint) ([]model.GradeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.GradeRecord
	for k, r := range f.records {
		if k.enrollment == enrollmentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeGradeStore) ListByClass(_ context.Context, classID uint) ([]model.GradeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.GradeRecord
	for k, r := range f.records {
		if f.classes.enrollments[k.enrollment].ClassID == classID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeRuleStore struct {
	sets map[string]model.ApprovalRuleSet
}

func ruleKey(schoolID uint, level grading.EducationLevel) string {
	return fmt.Sprintf("%d/%s", schoolID, level)
}

func (f *fakeRuleStore) Find(_ context.Context, schoolID uint, level grading.EducationLevel) (*model.ApprovalRuleSet, error) {
	rs, ok := f.sets[ruleKey(schoolID, level)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rs, nil
}

func (f *fakeRuleStore) Save(_ context.Context, rs *model.ApprovalRuleSet) error {
	if f.sets == nil {
		f.sets = map[string]model.ApprovalRuleSet{}
	}
	f.sets[ruleKey(rs.SchoolID, rs.EducationLevel)] = *rs
	return nil
}

// memoryCache records calls so tests can assert on invalidation.
type memoryCache struct {
	mu          sync.Mutex
	entries     map[uint]map[string]grading.FinalResult
	invalidated []uint
	hits        int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[uint]map[string]grading.FinalResult{}}
}

func (c *memoryCache) Get(_ context.Context, id uint, fp string) (*grading.FinalResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.entries[id][fp]
	if ok {
		c.hits++
	}
	return &res, ok
}

func (c *memoryCache) Set(_ context.Context, id uint, fp string, res *grading.FinalResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[id] == nil {
		c.entries[id] = map[string]grading.FinalResult{}
	}
	c.entries[id][fp] = *res
}

func (c *memoryCache) Invalidate(_ context.Context, id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

type memoryUploader struct {
	name    string
	body    []byte
	deleted []string
}

func (u *memoryUploader) Delete(_ context.Context, filename string) error {
	u.deleted = append(u.deleted, filename)
	return nil
}

func (u *memoryUploader) Upload(_ context.Context, filename string, r io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	u.name, u.body = filename, data
	return "/exports/" + filename, nil
}

func testGradingConfig() config.GradingConfig {
	return config.GradingConfig{
		Rules:          grading.DefaultApprovalRules(),
		Levels:         grading.DefaultProviderConfig(),
		AttendanceGate: grading.AttendanceGateNone,
		Workers:        4,
	}
}

func ptr(v float64) *float64 { return &v }
