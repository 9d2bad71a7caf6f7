package importer

import (
	"student-portal/internal/db"
	"student-portal/internal/model"
	"student-portal/pkg/errors"
)

// ForTarget builds the engine matching an import target.
func ForTarget(target model.ImportTarget, repo db.Repository) (Runner, error) {
	switch target {
	case model.ImportTargetTeacher:
		return NewTeacherEngine(repo), nil
	case model.ImportTargetStudent:
		return NewStudentEngine(repo), nil
	case model.ImportTargetScholarship:
		return NewScholarshipEngine(repo), nil
	default:
		return nil, errors.ErrUnknownImportTarget
	}
}
