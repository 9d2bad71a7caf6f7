package activity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-portal/internal/model"
)

type fakeSource struct {
	verified []model.Certificate
	err      error
}

func (f fakeSource) VerifiedCertificatesByOwner(ctx context.Context, ownerID string) ([]model.Certificate, error) {
	return f.verified, f.err
}

func TestComputeTotalSumsVerifiedPoints(t *testing.T) {
	src := fakeSource{verified: []model.Certificate{
		{ActivityPoint: 10, Status: model.CertificateStatusVerified},
		{ActivityPoint: 25, Status: model.CertificateStatusVerified},
		{ActivityPoint: 5, Status: model.CertificateStatusVerified},
	}}

	agg := NewAggregator(src, 100)
	total, err := agg.ComputeTotal(context.Background(), "S001")
	require.NoError(t, err)
	assert.Equal(t, 40, total)
}

func TestComputeTotalEmpty(t *testing.T) {
	agg := NewAggregator(fakeSource{}, 100)
	total, err := agg.ComputeTotal(context.Background(), "S001")
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		total, required, want int
	}{
		{0, 100, 0},
		{40, 100, 40},
		{100, 100, 100},
		{150, 100, 100}, // capped
		{33, 200, 17},   // rounded, not truncated
		{1, 3, 33},
		{10, 0, 0}, // degenerate policy
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CompletionPercentage(tt.total, tt.required), "total=%d required=%d", tt.total, tt.required)
	}
}

func TestSummary(t *testing.T) {
	src := fakeSource{verified: []model.Certificate{
		{ActivityPoint: 30}, {ActivityPoint: 30},
	}}

	agg := NewAggregator(src, 100)
	summary, err := agg.Summary(context.Background(), "S001")
	require.NoError(t, err)

	assert.Equal(t, "S001", summary.OwnerID)
	assert.Equal(t, 60, summary.TotalPoints)
	assert.Equal(t, 100, summary.RequiredPoints)
	assert.Equal(t, 60, summary.CompletionPercent)
}
