package certificate

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-portal/internal/config"
	"student-portal/internal/model"
	pkgerrors "student-portal/pkg/errors"
)

type fakeBlobStore struct {
	blobs     map[string][]byte
	uploadErr error
	deleteErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: map[string][]byte{}}
}

func (f *fakeBlobStore) Upload(ctx context.Context, key string, data io.Reader) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.blobs[key] = b
	return nil
}

func (f *fakeBlobStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	b, ok := f.blobs[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(strings.NewReader(string(b))), nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.blobs, key)
	return nil
}

func (f *fakeBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.blobs[key]
	return ok, nil
}

func (f *fakeBlobStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return "https://cdn.test/bucket/" + key
}

type fakeMetadataStore struct {
	certs     map[int64]model.Certificate
	nextID    int64
	insertErr error
	// failOn makes the n-th insert call fail (1-based); 0 disables it.
	failOn    int
	calls     int
	deleteErr error
}

func newFakeMetadataStore() *fakeMetadataStore {
	return &fakeMetadataStore{certs: map[int64]model.Certificate{}}
}

func (f *fakeMetadataStore) InsertCertificate(ctx context.Context, cert model.Certificate) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.calls++
	if f.failOn != 0 && f.calls == f.failOn {
		return 0, errors.New("metadata insert refused")
	}
	f.nextID++
	cert.CertificateID = f.nextID
	f.certs[f.nextID] = cert
	return f.nextID, nil
}

func (f *fakeMetadataStore) CertificatesByOwner(ctx context.Context, ownerID string) ([]model.Certificate, error) {
	var out []model.Certificate
	for _, c := range f.certs {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (f *fakeMetadataStore) DeleteCertificate(ctx context.Context, certificateID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.certs, certificateID)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Portal: config.PortalConfig{
			RequiredPoints:        100,
			MaxUploadBytes:        5 << 20,
			CertificateExtensions: []string{".pdf", ".jpg", ".jpeg", ".png"},
			ImportExtensions:      []string{".xlsx", ".xls"},
		},
	}
}

func TestUploadOneStoresBlobThenMetadata(t *testing.T) {
	blobs := newFakeBlobStore()
	repo := newFakeMetadataStore()
	svc := NewService(repo, blobs, testConfig())

	view, err := svc.UploadOne(context.Background(), Upload{FileName: "cert.pdf", Data: []byte("pdf")}, "S001")
	require.NoError(t, err)

	// The record's storage path resolves to a blob that exists.
	exists, err := blobs.Exists(context.Background(), view.StoragePath)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Equal(t, model.CertificateStatusPending, view.Status)
	assert.Equal(t, model.DefaultActivityPoint, view.Points)
	assert.Equal(t, "cert.pdf", view.Name)
	assert.True(t, strings.HasPrefix(view.StoragePath, "certificates/S001/"))
	assert.True(t, strings.HasSuffix(view.StoragePath, ".pdf"))
	assert.Equal(t, blobs.PublicURL(view.StoragePath), view.URL)
}

func TestUploadOneStorageFailure(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.uploadErr = errors.New("bucket unavailable")
	svc := NewService(newFakeMetadataStore(), blobs, testConfig())

	_, err := svc.UploadOne(context.Background(), Upload{FileName: "cert.pdf", Data: []byte("x")}, "S001")

	var upErr *pkgerrors.UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, pkgerrors.UploadKindStorage, upErr.Kind)
	assert.Equal(t, pkgerrors.StateUploading, upErr.State)
	assert.Empty(t, blobs.blobs)
}

func TestUploadOneMetadataFailureCompensates(t *testing.T) {
	blobs := newFakeBlobStore()
	repo := newFakeMetadataStore()
	repo.insertErr = errors.New("table busy")
	svc := NewService(repo, blobs, testConfig())

	_, err := svc.UploadOne(context.Background(), Upload{FileName: "cert.jpg", Data: []byte("x")}, "S001")

	var upErr *pkgerrors.UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, pkgerrors.UploadKindMetadata, upErr.Kind)
	assert.Equal(t, pkgerrors.StateRolledBack, upErr.State)

	// The phase-1 blob was removed, no orphan left behind.
	assert.Empty(t, blobs.blobs)
	assert.Empty(t, svc.Orphans())
}

func TestUploadOneCompensationFailureReportsOrphan(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.deleteErr = errors.New("delete denied")
	repo := newFakeMetadataStore()
	repo.insertErr = errors.New("table busy")
	svc := NewService(repo, blobs, testConfig())

	_, err := svc.UploadOne(context.Background(), Upload{FileName: "cert.png", Data: []byte("x")}, "S001")

	var upErr *pkgerrors.UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, pkgerrors.UploadKindCompensation, upErr.Kind)
	assert.Equal(t, pkgerrors.StateOrphaned, upErr.State)
	assert.NotEmpty(t, upErr.Key)

	orphans := svc.Orphans()
	require.Len(t, orphans, 1)
	assert.Equal(t, upErr.Key, orphans[0])
}

func TestUploadOneRejectsBadType(t *testing.T) {
	svc := NewService(newFakeMetadataStore(), newFakeBlobStore(), testConfig())

	_, err := svc.UploadOne(context.Background(), Upload{FileName: "malware.exe", Data: []byte("x")}, "S001")
	assert.ErrorIs(t, err, pkgerrors.ErrFileType)
}

func TestUploadOneRejectsOversize(t *testing.T) {
	cfg := testConfig()
	cfg.Portal.MaxUploadBytes = 4
	svc := NewService(newFakeMetadataStore(), newFakeBlobStore(), cfg)

	_, err := svc.UploadOne(context.Background(), Upload{FileName: "big.pdf", Data: []byte("12345")}, "S001")
	assert.ErrorIs(t, err, pkgerrors.ErrFileTooLarge)
}

func TestUploadManyIsolatesFailures(t *testing.T) {
	blobs := newFakeBlobStore()
	repo := newFakeMetadataStore()
	repo.failOn = 2 // the second metadata insert fails
	svc := NewService(repo, blobs, testConfig())

	uploads := []Upload{
		{FileName: "a.pdf", Data: []byte("a")},
		{FileName: "b.pdf", Data: []byte("b")},
		{FileName: "c.pdf", Data: []byte("c")},
	}

	result := svc.UploadMany(context.Background(), uploads, "S001")

	require.Len(t, result.Uploaded, 2)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "b.pdf", result.Errors[0].FileName)

	// Input order is preserved for the successes.
	assert.Equal(t, "a.pdf", result.Uploaded[0].Name)
	assert.Equal(t, "c.pdf", result.Uploaded[1].Name)

	// The failed file's blob no longer exists; the two successes do.
	assert.Len(t, blobs.blobs, 2)
	for _, view := range result.Uploaded {
		exists, _ := blobs.Exists(context.Background(), view.StoragePath)
		assert.True(t, exists)
	}
}

func TestFetchByOwnerOrdersMostRecentFirst(t *testing.T) {
	blobs := newFakeBlobStore()
	repo := newFakeMetadataStore()
	repo.certs[1] = model.Certificate{
		CertificateID: 1, OwnerID: "S001", StoragePath: "certificates/S001/old.pdf",
		Status: model.CertificateStatusVerified, ActivityPoint: 20,
		UploadedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	repo.certs[2] = model.Certificate{
		CertificateID: 2, OwnerID: "S001", StoragePath: "certificates/S001/new.pdf",
		Status: model.CertificateStatusPending, ActivityPoint: 10,
		UploadedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	repo.certs[3] = model.Certificate{
		CertificateID: 3, OwnerID: "S002", StoragePath: "certificates/S002/other.pdf",
		UploadedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	svc := NewService(repo, blobs, testConfig())
	views, err := svc.FetchByOwner(context.Background(), "S001")
	require.NoError(t, err)

	require.Len(t, views, 2)
	assert.Equal(t, int64(2), views[0].CertificateID)
	assert.Equal(t, int64(1), views[1].CertificateID)
	assert.Equal(t, "new.pdf", views[0].Name)
	assert.Equal(t, blobs.PublicURL("certificates/S001/new.pdf"), views[0].URL)
}

func TestDeleteRemovesMetadataThenBlob(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.blobs["certificates/S001/x.pdf"] = []byte("x")
	repo := newFakeMetadataStore()
	repo.certs[1] = model.Certificate{CertificateID: 1, OwnerID: "S001", StoragePath: "certificates/S001/x.pdf"}

	svc := NewService(repo, blobs, testConfig())
	require.NoError(t, svc.Delete(context.Background(), 1, "certificates/S001/x.pdf"))

	assert.Empty(t, repo.certs)
	assert.Empty(t, blobs.blobs)
}

func TestDeleteBlobFailureIsNotMasked(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.blobs["certificates/S001/x.pdf"] = []byte("x")
	blobs.deleteErr = errors.New("storage down")
	repo := newFakeMetadataStore()
	repo.certs[1] = model.Certificate{CertificateID: 1, OwnerID: "S001", StoragePath: "certificates/S001/x.pdf"}

	svc := NewService(repo, blobs, testConfig())
	err := svc.Delete(context.Background(), 1, "certificates/S001/x.pdf")
	require.Error(t, err)

	// Metadata row is gone, the blob dangles, and the key is observable.
	assert.Empty(t, repo.certs)
	assert.Contains(t, svc.Orphans(), "certificates/S001/x.pdf")
}
