// Recomputes the stored average and status of every grade record.
//
// Run after changing the passing grade or a school's approval rules, or after
// importing marks straight into the database.
//
// Usage: go run scripts/recompute_grades.go [-config configs/config.yaml] [-dry-run]

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"school_records_backend/internal/config"
	"school_records_backend/internal/grading"
	"school_records_backend/internal/model"
	"school_records_backend/internal/repository"
	"school_records_backend/internal/service"
	"school_records_backend/pkg/database"
	"school_records_backend/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type scriptConfig struct {
	Server   config.ServerConfig   `yaml:"server"`
	Database config.DatabaseConfig `yaml:"database"`
	Grading  struct {
		Rules struct {
			PassingGrade            float64 `yaml:"passing_grade"`
			MinAttendance           float64 `yaml:"min_attendance"`
			DependencyEnabled       bool    `yaml:"dependency_enabled"`
			MaxDependencyComponents int     `yaml:"max_dependency_components"`
			OnlyDependency          bool    `yaml:"only_dependency"`
		} `yaml:"rules"`
	} `yaml:"grading"`
}

func (c scriptConfig) grading() config.GradingConfig {
	rules := grading.DefaultApprovalRules()
	r := c.Grading.Rules
	if r.PassingGrade > 0 {
		rules.PassingGrade = r.PassingGrade
	}
	if r.MinAttendance > 0 {
		rules.MinAttendance = r.MinAttendance
	}
	if r.MaxDependencyComponents > 0 {
		rules.MaxDependencyComponents = r.MaxDependencyComponents
	}
	rules.DependencyEnabled = r.DependencyEnabled
	rules.OnlyDependency = r.OnlyDependency

	return config.GradingConfig{
		Rules:  rules,
		Levels: grading.DefaultProviderConfig(),
	}
}

func sameAverage(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	// decimal(5,3) column
	d := *a - *b
	return d < 0.0005 && d > -0.0005
}

func main() {
	path := flag.String("config", "configs/config.yaml", "config file")
	dryRun := flag.Bool("dry-run", false, "report changes without writing them")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}

	var sc scriptConfig
	if err := yaml.Unmarshal(data, &sc); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}
	gradingCfg := sc.grading()
	if err := gradingCfg.Validate(); err != nil {
		log.Fatalf("Invalid grading section: %v", err)
	}

	logger.InitLogger(&config.Config{Server: sc.Server})
	defer logger.Log.Sync()

	db, err := database.InitDB(&sc.Database, false)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	classes := repository.NewClassRepository(db)
	grades := repository.NewGradeRepository(db)
	rules := service.NewRulesService(repository.NewApprovalRuleRepository(db), gradingCfg)

	allClasses, err := classes.ListAllClasses(ctx)
	if err != nil {
		log.Fatalf("Failed to list classes: %v", err)
	}

	var scanned, changed int
	for _, class := range allClasses {
		components, err := classes.ListComponents(ctx, class.ID)
		if err != nil {
			log.Fatalf("Failed to list components of class %d: %v", class.ID, err)
		}
		byID := make(map[uint]model.CurriculumComponent, len(components))
		for _, c := range components {
			c.Conceptual = c.Conceptual || class.EarlyChildhood()
			byID[c.ID] = c
		}

		classRules, err := rules.Resolve(ctx, class.SchoolID, class.EducationLevel)
		if err != nil {
			log.Fatalf("Failed to resolve rules of class %d: %v", class.ID, err)
		}

		records, err := grades.ListByClass(ctx, class.ID)
		if err != nil {
			log.Fatalf("Failed to list grades of class %d: %v", class.ID, err)
		}

		for _, rec := range records {
			component, ok := byID[rec.ComponentID]
			if !ok {
				continue
			}
			scanned++
			eval := service.EvaluateRecord(rec, component, classRules.PassingGrade)

			avg := eval.Average.Ptr()
			if sameAverage(avg, rec.Average) && string(eval.Status) == rec.Status {
				continue
			}
			changed++
			logger.Log.Info("Grade record recomputed",
				zap.Uint("record_id", rec.ID),
				zap.Uint("class_id", class.ID),
				zap.String("old_status", rec.Status),
				zap.String("new_status", string(eval.Status)),
			)
			if *dryRun {
				continue
			}
			if err := grades.UpdateComputed(ctx, rec.ID, avg, string(eval.Status)); err != nil {
				log.Fatalf("Failed to update record %d: %v", rec.ID, err)
			}
		}
	}

	log.Printf("Done: %d records scanned, %d changed (dry run: %t)", scanned, changed, *dryRun)
}
