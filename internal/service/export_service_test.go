package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"school_records_backend/internal/grading"
	"school_records_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportClassResults(t *testing.T) {
	f := newApprovalFixture()
	f.mark(1, 10, 8)
	f.mark(1, 11, 6.5)

	up := &memoryUploader{}
	receipts := &memoryExports{}
	exports := &ExportService{Results: f.svc, Storage: up, Exports: receipts}

	res, err := exports.ExportClassResults(context.Background(), 1, 7)
	require.NoError(t, err)

	listed, err := exports.ListExports(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, uint(7), listed[0].RequestedBy)
	assert.Equal(t, "/exports/"+res.ObjectName, res.URL)

	assert.True(t, strings.HasPrefix(res.ObjectName, "class-results/1/"))
	assert.True(t, strings.HasSuffix(res.ObjectName, ".json"))
	assert.Equal(t, up.name, res.ObjectName)
	assert.Equal(t, 4, res.Students)

	var doc ClassExport
	require.NoError(t, json.Unmarshal(up.body, &doc))
	require.Len(t, doc.Students, 4)

	ana := doc.Students[0]
	assert.Equal(t, string(grading.VerdictApproved), ana.Situation)
	require.Len(t, ana.Components, 3)
	assert.Equal(t, "8,0", ana.Components[0].Average)
	assert.Equal(t, "6,5", ana.Components[1].Average)
	assert.Equal(t, "-", ana.Components[2].Average)

	bruno := doc.Students[1]
	assert.Equal(t, "TRANSFERIDO", bruno.Situation)
	assert.Empty(t, bruno.Components)
}

func TestExportClassResults_ReceiptFailureRemovesObject(t *testing.T) {
	f := newApprovalFixture()
	up := &memoryUploader{}
	exports := &ExportService{Results: f.svc, Storage: up, Exports: &memoryExports{err: errors.New("db down")}}

	_, err := exports.ExportClassResults(context.Background(), 1, 7)
	require.Error(t, err)
	assert.Equal(t, []string{up.name}, up.deleted)
}

type memoryExports struct {
	items []model.ResultExport
	err   error
}

func (m *memoryExports) Create(_ context.Context, e *model.ResultExport) error {
	if m.err != nil {
		return m.err
	}
	m.items = append(m.items, *e)
	return nil
}

func (m *memoryExports) ListByClass(_ context.Context, classID uint) ([]model.ResultExport, error) {
	var out []model.ResultExport
	for _, e := range m.items {
		if e.ClassID == classID {
			out = append(out, e)
		}
	}
	return out, nil
}
