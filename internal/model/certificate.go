package model

import "time"

type CertificateStatus string

const (
	CertificateStatusPending  CertificateStatus = "Pending"
	CertificateStatusVerified CertificateStatus = "Verified"
	CertificateStatusRejected CertificateStatus = "Rejected"
)

// DefaultActivityPoint is assigned at upload; a verifier may change it later.
const DefaultActivityPoint = 10

type Certificate struct {
	CertificateID int64             `json:"certificate_id" db:"certificate_id"`
	OwnerID       string            `json:"owner_id" db:"owner_id"`
	StoragePath   string            `json:"storage_path" db:"storage_path"`
	Status        CertificateStatus `json:"status" db:"status"`
	ActivityPoint int               `json:"activity_point" db:"activity_point"`
	UploadedAt    time.Time         `json:"uploaded_at" db:"uploaded_at"`
}

// CertificateView is what the display layer gets back: the stored record
// plus a locally derived public URL.
type CertificateView struct {
	CertificateID int64             `json:"certificate_id"`
	Name          string            `json:"name"`
	Date          string            `json:"date"`
	Status        CertificateStatus `json:"status"`
	Points        int               `json:"points"`
	StoragePath   string            `json:"storage_path"`
	URL           string            `json:"url"`
}

type ActivitySummary struct {
	OwnerID           string `json:"owner_id"`
	TotalPoints       int    `json:"total_points"`
	RequiredPoints    int    `json:"required_points"`
	CompletionPercent int    `json:"completion_percent"`
}
