package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"school_records_backend/internal/config"
	"school_records_backend/internal/grading"
	"school_records_backend/internal/model"
	"school_records_backend/internal/util"
	"school_records_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RulesService resolves the approval rules of a school/level and owns the
// engine built from the grading config. Both are swapped on config reload.
type RulesService struct {
	Repo RuleStore

	mu       sync.RWMutex
	grading  config.GradingConfig
	engine   *grading.Engine
	gateName string
}

func NewRulesService(repo RuleStore, cfg config.GradingConfig) *RulesService {
	s := &RulesService{Repo: repo}
	s.Reload(cfg)
	return s
}

// Reload installs new defaults. Callers pass an already validated config.
func (s *RulesService) Reload(cfg config.GradingConfig) {
	engine := grading.NewEngine(
		grading.NewPolicyProvider(cfg.Levels),
		grading.AttendanceRuleFor(cfg.AttendanceGate),
	)

	s.mu.Lock()
	s.grading = cfg
	s.engine = engine
	s.gateName = cfg.AttendanceGate
	s.mu.Unlock()

	logger.Log.Info("Grading defaults loaded",
		zap.Float64("passing_grade", cfg.Rules.PassingGrade),
		zap.Bool("dependency_enabled", cfg.Rules.DependencyEnabled),
		zap.String("attendance_gate", cfg.AttendanceGate),
	)
}

func (s *RulesService) Defaults() grading.ApprovalRules {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grading.Rules
}

func (s *RulesService) Workers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.grading.Workers <= 0 {
		return 1
	}
	return s.grading.Workers
}

// Resolve returns the school's override for the level, or the defaults.
func (s *RulesService) Resolve(ctx context.Context, schoolID uint, level grading.EducationLevel) (grading.ApprovalRules, error) {
	rs, err := s.Repo.Find(ctx, schoolID, level)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.Defaults(), nil
	}
	if err != nil {
		return grading.ApprovalRules{}, err
	}

	rules := rs.Rules()
	if err := rules.Validate(); err != nil {
		// a bad row must not decide results; fall back and shout
		logger.Log.Error("Stored approval rules are invalid, using defaults",
			zap.Uint("school_id", schoolID),
			zap.String("level", string(level)),
			zap.Error(err),
		)
		return s.Defaults(), nil
	}
	return rules, nil
}

type ApprovalRulesRequest struct {
	SchoolID       uint                  `json:"schoolId" binding:"required"`
	EducationLevel string                `json:"educationLevel" binding:"required"`
	Rules          grading.ApprovalRules `json:"rules"`
}

// SaveOverride validates and stores a school/level override.
func (s *RulesService) SaveOverride(ctx context.Context, req ApprovalRulesRequest) (*model.ApprovalRuleSet, error) {
	level, err := grading.ParseEducationLevel(req.EducationLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidRules, err)
	}
	if err := req.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidRules, err)
	}

	rs := &model.ApprovalRuleSet{
		SchoolID:                req.SchoolID,
		EducationLevel:          level,
		PassingGrade:            req.Rules.PassingGrade,
		MinAttendance:           req.Rules.MinAttendance,
		DependencyEnabled:       req.Rules.DependencyEnabled,
		MaxDependencyComponents: req.Rules.MaxDependencyComponents,
		OnlyDependency:          req.Rules.OnlyDependency,
	}
	if err := s.Repo.Save(ctx, rs); err != nil {
		return nil, err
	}
	return rs, nil
}

type componentKey struct {
	ID         uint
	Name       string
	Optional   bool
	Conceptual bool
}

// Snapshot returns the current engine together with the fingerprint of a
// result it computes for sc, components and rules. Both come from the same
// config generation. Marks are not part of the fingerprint: saving a grade
// invalidates the enrollment instead.
func (s *RulesService) Snapshot(rules grading.ApprovalRules, sc grading.StudentContext, components []model.CurriculumComponent) (*grading.Engine, string) {
	keys := make([]componentKey, 0, len(components))
	for _, c := range components {
		keys = append(keys, componentKey{ID: c.ID, Name: c.Name, Optional: c.Optional, Conceptual: c.Conceptual})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].ID < keys[j].ID })

	s.mu.RLock()
	engine := s.engine
	payload, _ := json.Marshal(struct {
		Rules      grading.ApprovalRules
		Levels     grading.ProviderConfig
		Gate       string
		Student    grading.StudentContext
		Components []componentKey
	}{rules, s.grading.Levels, s.gateName, sc, keys})
	s.mu.RUnlock()

	sum := sha1.Sum(payload)
	return engine, hex.EncodeToString(sum[:8])
}
