// Package activity derives a student's earned activity points from
// verified certificate metadata. Pure aggregation, no mutation.
package activity

import (
	"context"
	"math"

	"student-portal/internal/model"
)

// DefaultRequiredPoints is the policy constant for full completion.
const DefaultRequiredPoints = 100

// CertificateSource yields the verified certificates the aggregate is
// computed over.
type CertificateSource interface {
	VerifiedCertificatesByOwner(ctx context.Context, ownerID string) ([]model.Certificate, error)
}

type Aggregator struct {
	repo     CertificateSource
	required int
}

func NewAggregator(repo CertificateSource, required int) *Aggregator {
	if required <= 0 {
		required = DefaultRequiredPoints
	}
	return &Aggregator{repo: repo, required: required}
}

// ComputeTotal sums activity points over the owner's Verified certificates.
func (a *Aggregator) ComputeTotal(ctx context.Context, ownerID string) (int, error) {
	certs, err := a.repo.VerifiedCertificatesByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, cert := range certs {
		total += cert.ActivityPoint
	}
	return total, nil
}

// CompletionPercentage is min(100, round(100*total/required)).
func CompletionPercentage(total, required int) int {
	if required <= 0 {
		return 0
	}
	pct := int(math.Round(float64(total) / float64(required) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

func (a *Aggregator) Summary(ctx context.Context, ownerID string) (*model.ActivitySummary, error) {
	total, err := a.ComputeTotal(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &model.ActivitySummary{
		OwnerID:           ownerID,
		TotalPoints:       total,
		RequiredPoints:    a.required,
		CompletionPercent: CompletionPercentage(total, a.required),
	}, nil
}
