package importer

import (
	"context"

	"student-portal/internal/db"
	"student-portal/internal/excel"
	"student-portal/internal/model"
)

// StudentSchema normalizes rows for the student table. Unlike teacher
// imports, rows with missing fields are kept and filled with defaults.
type StudentSchema struct{}

func (StudentSchema) Target() model.ImportTarget { return model.ImportTargetStudent }

func (StudentSchema) Normalize(row excel.Row, index int) (model.Student, []string, bool) {
	class, warnings := canonicalEnum("class", row.Get("class"), model.Classes)

	var gender *string
	if g := row.Get("gender"); g != "" {
		gender = &g
	}

	return model.Student{
		ID:                 row.Get("id"),
		Name:               stringOr(row.Get("name"), defaultName),
		Class:              class,
		TotalActivityPoint: intOr(row.Get("total_activity_point"), 0),
		DOB:                excel.ParseDate(row.Get("dob")),
		Password:           stringOr(row.Get("password"), defaultPassword),
		Gender:             gender,
		Income:             currencyOr(row.Get("income"), defaultIncome),
	}, warnings, true
}

func (StudentSchema) Key(s model.Student) string { return s.ID }

type studentSink struct {
	repo db.Repository
}

func (s studentSink) ExistingIDs(ctx context.Context) ([]string, error) {
	return s.repo.StudentIDs(ctx)
}

func (s studentSink) Insert(ctx context.Context, students []model.Student) error {
	return s.repo.InsertStudents(ctx, students)
}

func NewStudentEngine(repo db.Repository) Runner {
	return New[model.Student, string](StudentSchema{}, studentSink{repo: repo})
}
