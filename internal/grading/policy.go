package grading

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type EducationLevel string

const (
	LevelEarlyChildhood EducationLevel = "educacao_infantil"
	LevelFundamental    EducationLevel = "fundamental"
	LevelHighSchool     EducationLevel = "medio"
	LevelEJA            EducationLevel = "eja"
)

var ErrUnknownEducationLevel = errors.New("unknown education level")

// ParseEducationLevel is used at request and config boundaries; the engine
// assumes it only ever sees known levels.
func ParseEducationLevel(s string) (EducationLevel, error) {
	switch l := EducationLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelEarlyChildhood, LevelFundamental, LevelHighSchool, LevelEJA:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEducationLevel, s)
}

type Verdict string

const (
	VerdictInProgress             Verdict = "EM ANDAMENTO"
	VerdictApproved               Verdict = "APROVADO"
	VerdictFailed                 Verdict = "REPROVADO"
	VerdictApprovedWithDependency Verdict = "APROVADO COM DEPENDÊNCIA"
	VerdictInDependency           Verdict = "EM DEPENDÊNCIA"
)

type PolicyKind string

const (
	PolicyNoDependency   PolicyKind = "no_dependency"
	PolicyDependencyOnly PolicyKind = "dependency_only"
	PolicyFullDependency PolicyKind = "full_dependency"
)

// Policy decides the verdict of a student who failed at least one component.
type Policy interface {
	Kind() PolicyKind
	Resolve(failed int, attendance float64, rules ApprovalRules) (Verdict, string)
}

// dependencyGate holds the checks shared by every variant; ok is false when
// the student is failed regardless of the level.
func dependencyGate(failed int, attendance float64, rules ApprovalRules) (string, bool) {
	if !rules.DependencyEnabled {
		return "promoção com dependência desabilitada", false
	}
	if failed > rules.MaxDependencyComponents {
		return fmt.Sprintf("%d componente(s) reprovado(s), limite de dependência é %d", failed, rules.MaxDependencyComponents), false
	}
	if attendance < rules.MinAttendance {
		return fmt.Sprintf("frequência %.1f%% abaixo do mínimo de %.1f%%", attendance, rules.MinAttendance), false
	}
	return "", true
}

type noDependencyPolicy struct{}

func (noDependencyPolicy) Kind() PolicyKind { return PolicyNoDependency }

func (noDependencyPolicy) Resolve(failed int, _ float64, _ ApprovalRules) (Verdict, string) {
	return VerdictFailed, fmt.Sprintf("%d componente(s) reprovado(s); etapa não admite dependência", failed)
}

type dependencyOnlyPolicy struct{}

func (dependencyOnlyPolicy) Kind() PolicyKind { return PolicyDependencyOnly }

func (dependencyOnlyPolicy) Resolve(failed int, attendance float64, rules ApprovalRules) (Verdict, string) {
	if reason, ok := dependencyGate(failed, attendance, rules); !ok {
		return VerdictFailed, reason
	}
	return VerdictInDependency, fmt.Sprintf("%d componente(s) em dependência; etapa final", failed)
}

type fullDependencyPolicy struct{}

func (fullDependencyPolicy) Kind() PolicyKind { return PolicyFullDependency }

func (fullDependencyPolicy) Resolve(failed int, attendance float64, rules ApprovalRules) (Verdict, string) {
	if reason, ok := dependencyGate(failed, attendance, rules); !ok {
		return VerdictFailed, reason
	}
	if rules.OnlyDependency {
		return VerdictInDependency, fmt.Sprintf("%d componente(s) em dependência; cursa apenas a dependência", failed)
	}
	return VerdictApprovedWithDependency, fmt.Sprintf("promovido com %d componente(s) em dependência", failed)
}

var (
	NoDependency   Policy = noDependencyPolicy{}
	DependencyOnly Policy = dependencyOnlyPolicy{}
	FullDependency Policy = fullDependencyPolicy{}
)

// ProviderConfig names the terminal grades of each level.
type ProviderConfig struct {
	// FundamentalLastEarlyGrade is the last grade of anos iniciais (default 5).
	FundamentalLastEarlyGrade int `mapstructure:"fundamental_last_early_grade" validate:"gte=1,lte=9"`
	// FundamentalFinalGrade is the last grade of ensino fundamental (default 9).
	FundamentalFinalGrade int `mapstructure:"fundamental_final_grade" validate:"gte=1,lte=9"`
	// EJAFinalStage is the last EJA stage (default 4).
	EJAFinalStage int `mapstructure:"eja_final_stage" validate:"gte=1,lte=12"`
}

func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		FundamentalLastEarlyGrade: 5,
		FundamentalFinalGrade:     9,
		EJAFinalStage:             4,
	}
}

type PolicyProvider struct {
	cfg ProviderConfig
}

func NewPolicyProvider(cfg ProviderConfig) *PolicyProvider {
	def := DefaultProviderConfig()
	if cfg.FundamentalLastEarlyGrade <= 0 {
		cfg.FundamentalLastEarlyGrade = def.FundamentalLastEarlyGrade
	}
	if cfg.FundamentalFinalGrade <= 0 {
		cfg.FundamentalFinalGrade = def.FundamentalFinalGrade
	}
	if cfg.EJAFinalStage <= 0 {
		cfg.EJAFinalStage = def.EJAFinalStage
	}
	return &PolicyProvider{cfg: cfg}
}

var gradeNumberPattern = regexp.MustCompile(`\d+`)

// GradeNumber extracts the ordinal from labels like "5º Ano" or "4ª Etapa".
func GradeNumber(label string) (int, bool) {
	digits := gradeNumberPattern.FindString(label)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// PolicyFor selects the variant for a level and grade label.
func (p *PolicyProvider) PolicyFor(level EducationLevel, gradeLabel string) Policy {
	n, ok := GradeNumber(gradeLabel)
	switch level {
	case LevelEarlyChildhood:
		return NoDependency
	case LevelFundamental:
		if !ok {
			return FullDependency
		}
		if n <= p.cfg.FundamentalLastEarlyGrade {
			return NoDependency
		}
		if n == p.cfg.FundamentalFinalGrade {
			return DependencyOnly
		}
	case LevelEJA:
		if ok && n == p.cfg.EJAFinalStage {
			return DependencyOnly
		}
	}
	return FullDependency
}
