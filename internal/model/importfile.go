package model

import "time"

type ImportTarget string

const (
	ImportTargetTeacher     ImportTarget = "teacher"
	ImportTargetStudent     ImportTarget = "student"
	ImportTargetScholarship ImportTarget = "scholarship"
)

type ImportStatus string

const (
	ImportStatusUploaded ImportStatus = "UPLOADED"
	ImportStatusImported ImportStatus = "IMPORTED"
	ImportStatusFailed   ImportStatus = "IMPORT_FAILED"
)

// ImportFile tracks an uploaded workbook through the async import pipeline.
type ImportFile struct {
	ID            int64        `json:"id" db:"id"`
	S3Path        string       `json:"s3_path" db:"s3_path"`
	Target        ImportTarget `json:"target" db:"target"`
	Status        ImportStatus `json:"status" db:"status"`
	InsertedCount int          `json:"inserted_count" db:"inserted_count"`
	SkippedCount  int          `json:"skipped_count" db:"skipped_count"`
	ErrorMessage  *string      `json:"error_message,omitempty" db:"error_message"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}
