package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"school_records_backend/internal/grading"
	"school_records_backend/internal/model"
	"school_records_backend/internal/util"
	"school_records_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type classResulter interface {
	ClassResults(ctx context.Context, classID uint) ([]StudentResultView, error)
}

type uploader interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
}

type ExportStore interface {
	Create(ctx context.Context, e *model.ResultExport) error
	ListByClass(ctx context.Context, classID uint) ([]model.ResultExport, error)
}

type ExportService struct {
	Results classResulter
	Storage uploader
	Exports ExportStore
}

func NewExportService(results *ApprovalService, storage *StorageService, exports ExportStore) *ExportService {
	return &ExportService{Results: results, Storage: storage, Exports: exports}
}

type ExportedComponent struct {
	Name    string                  `json:"name"`
	Average string                  `json:"average"`
	Status  grading.ComponentStatus `json:"status"`
}

type ExportedStudent struct {
	EnrollmentID uint                `json:"enrollmentId"`
	StudentName  string              `json:"studentName"`
	Attendance   float64             `json:"attendance"`
	Situation    string              `json:"situation"`
	Rationale    string              `json:"rationale,omitempty"`
	Components   []ExportedComponent `json:"components,omitempty"`
}

type ClassExport struct {
	ClassID     uint              `json:"classId"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Students    []ExportedStudent `json:"students"`
}

// ExportClassResults writes the class's results with display-formatted marks
// to the configured storage and keeps a receipt.
func (s *ExportService) ExportClassResults(ctx context.Context, classID, userID uint) (*model.ResultExport, error) {
	views, err := s.Results.ClassResults(ctx, classID)
	if err != nil {
		return nil, err
	}

	doc := ClassExport{
		ClassID:     classID,
		GeneratedAt: time.Now(),
		Students:    make([]ExportedStudent, 0, len(views)),
	}
	for _, v := range views {
		st := ExportedStudent{
			EnrollmentID: v.EnrollmentID,
			StudentName:  v.StudentName,
			Attendance:   v.Attendance,
			Situation:    v.Situation,
		}
		if v.Result != nil {
			st.Rationale = v.Result.Rationale
			for _, c := range v.Result.Components {
				st.Components = append(st.Components, ExportedComponent{
					Name:    c.Name,
					Average: grading.FormatMark(c.Average),
					Status:  c.Status,
				})
			}
		}
		doc.Students = append(doc.Students, st)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("class-results/%d/%s.json", classID, uuid.NewString())
	url, err := s.Storage.Upload(ctx, name, bytes.NewReader(data), int64(len(data)), util.MimeJSON)
	if err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	receipt := &model.ResultExport{
		ClassID:     classID,
		ObjectName:  name,
		URL:         url,
		Students:    len(doc.Students),
		RequestedBy: userID,
	}
	if err := s.Exports.Create(ctx, receipt); err != nil {
		// no receipt, no orphaned object
		if delErr := s.Storage.Delete(ctx, name); delErr != nil {
			logger.Log.Warn("Failed to remove unrecorded export", zap.String("object", name), zap.Error(delErr))
		}
		return nil, err
	}

	logger.Log.Info("Class results exported",
		zap.Uint("class_id", classID),
		zap.String("object", name),
		zap.String("export_id", receipt.ID),
		zap.Int("students", len(doc.Students)),
	)
	return receipt, nil
}

func (s *ExportService) ListExports(ctx context.Context, classID uint) ([]model.ResultExport, error) {
	return s.Exports.ListByClass(ctx, classID)
}
