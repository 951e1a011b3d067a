package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
storage:
  type: minio
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5.0, cfg.Grading.Rules.PassingGrade)
	assert.Equal(t, 75.0, cfg.Grading.Rules.MinAttendance)
	assert.False(t, cfg.Grading.Rules.DependencyEnabled)
	assert.Equal(t, 2, cfg.Grading.Rules.MaxDependencyComponents)
	assert.Equal(t, 9, cfg.Grading.Levels.FundamentalFinalGrade)
	assert.Equal(t, 4, cfg.Grading.Levels.EJAFinalStage)
	assert.Equal(t, "none", cfg.Grading.AttendanceGate)
	assert.Equal(t, 10*time.Minute, cfg.Grading.ResultCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
}

func TestLoadConfig_GradingSection(t *testing.T) {
	dir := writeConfig(t, `
storage:
  type: minio
grading:
  attendance_gate: minimum
  result_cache_ttl: 30s
  rules:
    passing_grade: 6
    min_attendance: 70
    dependency_enabled: true
    max_dependency_components: 3
    only_dependency: true
  levels:
    eja_final_stage: 2
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 6.0, cfg.Grading.Rules.PassingGrade)
	assert.Equal(t, 70.0, cfg.Grading.Rules.MinAttendance)
	assert.True(t, cfg.Grading.Rules.DependencyEnabled)
	assert.Equal(t, 3, cfg.Grading.Rules.MaxDependencyComponents)
	assert.True(t, cfg.Grading.Rules.OnlyDependency)
	assert.Equal(t, 2, cfg.Grading.Levels.EJAFinalStage)
	assert.Equal(t, "minimum", cfg.Grading.AttendanceGate)
	assert.Equal(t, 30*time.Second, cfg.Grading.ResultCacheTTL)
}

func TestLoadConfig_RejectsInvalidGrading(t *testing.T) {
	tests := map[string]string{
		"passing grade out of range": "grading:\n  rules:\n    passing_grade: 12\n",
		"unknown attendance gate":    "grading:\n  attendance_gate: sometimes\n",
		"attendance over 100":        "grading:\n  rules:\n    min_attendance: 101\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			dir := writeConfig(t, "storage:\n  type: minio\n"+body)
			_, err := LoadConfig(dir)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_ShortSecretInRelease(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
jwt:
  secret: short
storage:
  type: minio
`)

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "JWT secret is too short")
}
