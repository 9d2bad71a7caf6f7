package importer

import (
	"context"
	"strconv"
	"time"

	"student-portal/internal/db"
	"student-portal/internal/excel"
	"student-portal/internal/model"
)

// ScholarshipSchema normalizes rows for the scholarships table. Rows
// without an explicit numeric id get a time-based one, offset by the row
// index so ids stay unique within a batch.
type ScholarshipSchema struct {
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s ScholarshipSchema) Target() model.ImportTarget { return model.ImportTargetScholarship }

func (s ScholarshipSchema) Normalize(row excel.Row, index int) (model.Scholarship, []string, bool) {
	id, err := strconv.ParseInt(row.Get("id"), 10, 64)
	if err != nil || id == 0 {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		id = now().UnixMilli() + int64(index)
	}

	return model.Scholarship{
		ID:          id,
		Name:        row.Get("name"),
		Provider:    row.Get("provider"),
		Amount:      row.Get("amount"),
		Deadline:    row.Get("deadline"),
		Eligibility: row.Get("eligibility"),
		Description: stringOr(row.Get("description"), defaultDescription),
		Applied:     false,
	}, nil, true
}

func (ScholarshipSchema) Key(s model.Scholarship) int64 { return s.ID }

type scholarshipSink struct {
	repo db.Repository
}

func (s scholarshipSink) ExistingIDs(ctx context.Context) ([]int64, error) {
	return s.repo.ScholarshipIDs(ctx)
}

func (s scholarshipSink) Insert(ctx context.Context, scholarships []model.Scholarship) error {
	return s.repo.InsertScholarships(ctx, scholarships)
}

func NewScholarshipEngine(repo db.Repository) Runner {
	return New[model.Scholarship, int64](ScholarshipSchema{}, scholarshipSink{repo: repo})
}
