package importer

import (
	"context"

	"student-portal/internal/db"
	"student-portal/internal/excel"
	"student-portal/internal/model"
)

// TeacherSchema normalizes rows for the teacher table. Rows missing the
// external id or the name are dropped from the batch.
type TeacherSchema struct{}

func (TeacherSchema) Target() model.ImportTarget { return model.ImportTargetTeacher }

func (TeacherSchema) Normalize(row excel.Row, index int) (model.Teacher, []string, bool) {
	id := row.Get("id")
	name := row.Get("name")
	if id == "" || name == "" {
		return model.Teacher{}, nil, false
	}

	dept, warnings := canonicalEnum("department", row.Get("dept"), model.Departments)

	return model.Teacher{
		ID:       id,
		Name:     name,
		Dept:     dept,
		Position: stringOr(row.Get("position"), defaultPosition),
		DOB:      excel.ParseDate(row.Get("dob")),
		Password: stringOr(row.Get("password"), defaultPassword),
	}, warnings, true
}

func (TeacherSchema) Key(t model.Teacher) string { return t.ID }

type teacherSink struct {
	repo db.Repository
}

func (s teacherSink) ExistingIDs(ctx context.Context) ([]string, error) {
	return s.repo.TeacherIDs(ctx)
}

func (s teacherSink) Insert(ctx context.Context, teachers []model.Teacher) error {
	return s.repo.InsertTeachers(ctx, teachers)
}

func NewTeacherEngine(repo db.Repository) Runner {
	return New[model.Teacher, string](TeacherSchema{}, teacherSink{repo: repo})
}
