package certificate

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"student-portal/internal/config"
	"student-portal/internal/logger"
	"student-portal/internal/model"
	"student-portal/internal/storage"
	"student-portal/pkg/errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Upload is one file handed to the ingestion service.
type Upload struct {
	FileName string
	Data     []byte
}

// MetadataStore is the slice of the metadata client this service needs.
type MetadataStore interface {
	InsertCertificate(ctx context.Context, cert model.Certificate) (int64, error)
	CertificatesByOwner(ctx context.Context, ownerID string) ([]model.Certificate, error)
	DeleteCertificate(ctx context.Context, certificateID int64) error
}

// Service coordinates the blob store and the metadata store for
// certificate uploads. The two stores share no transaction: consistency
// comes from writing the blob first and compensating with a blob delete
// when the metadata insert fails.
type Service struct {
	repo  MetadataStore
	blobs storage.BlobStore
	cfg   *config.Config
	log   zerolog.Logger

	mu       sync.Mutex
	orphaned []string
}

func NewService(repo MetadataStore, blobs storage.BlobStore, cfg *config.Config) *Service {
	return &Service{
		repo:  repo,
		blobs: blobs,
		cfg:   cfg,
		log:   logger.Get(),
	}
}

// UploadOne runs the two-phase upload saga for a single file. The returned
// error is always a *errors.UploadError carrying the phase, the terminal
// saga state, and the storage key involved.
func (s *Service) UploadOne(ctx context.Context, up Upload, ownerID string) (*model.CertificateView, error) {
	if err := s.validate(up); err != nil {
		return nil, err
	}

	key := s.storageKey(ownerID, up.FileName)
	log := s.log.With().Str("owner_id", ownerID).Str("key", key).Logger()

	// Phase 1: blob write. Nothing to compensate on failure.
	if err := s.blobs.Upload(ctx, key, bytes.NewReader(up.Data)); err != nil {
		log.Error().Err(err).Msg("Blob write failed")
		return nil, &errors.UploadError{
			Kind:  errors.UploadKindStorage,
			State: errors.StateUploading,
			Key:   key,
			Err:   err,
		}
	}

	// Phase 2: metadata insert referencing the stored key.
	now := time.Now()
	cert := model.Certificate{
		OwnerID:       ownerID,
		StoragePath:   key,
		Status:        model.CertificateStatusPending,
		ActivityPoint: model.DefaultActivityPoint,
		UploadedAt:    now,
	}

	id, err := s.repo.InsertCertificate(ctx, cert)
	if err != nil {
		log.Error().Err(err).Msg("Metadata insert failed, compensating")
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			log.Error().Err(delErr).Msg("Compensating delete failed, blob orphaned")
			s.recordOrphan(key)
			return nil, &errors.UploadError{
				Kind:  errors.UploadKindCompensation,
				State: errors.StateOrphaned,
				Key:   key,
				Err:   delErr,
			}
		}
		return nil, &errors.UploadError{
			Kind:  errors.UploadKindMetadata,
			State: errors.StateRolledBack,
			Key:   key,
			Err:   err,
		}
	}

	log.Info().Int64("certificate_id", id).Msg("Certificate uploaded")

	return &model.CertificateView{
		CertificateID: id,
		Name:          up.FileName,
		Date:          now.Format("2006-01-02"),
		Status:        model.CertificateStatusPending,
		Points:        model.DefaultActivityPoint,
		StoragePath:   key,
		URL:           s.blobs.PublicURL(key),
	}, nil
}

// UploadMany processes files strictly one at a time. A failed file never
// aborts the batch; Uploaded preserves input order.
func (s *Service) UploadMany(ctx context.Context, uploads []Upload, ownerID string) *model.BatchResult {
	result := &model.BatchResult{}

	for _, up := range uploads {
		view, err := s.UploadOne(ctx, up, ownerID)
		if err != nil {
			result.Errors = append(result.Errors, model.FileError{
				FileName: up.FileName,
				Error:    err.Error(),
			})
			continue
		}
		result.Uploaded = append(result.Uploaded, *view)
	}

	return result
}

// FetchByOwner returns the owner's certificates most recent first, each
// with its public URL derived locally.
func (s *Service) FetchByOwner(ctx context.Context, ownerID string) ([]model.CertificateView, error) {
	certs, err := s.repo.CertificatesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	views := make([]model.CertificateView, 0, len(certs))
	for _, cert := range certs {
		views = append(views, model.CertificateView{
			CertificateID: cert.CertificateID,
			Name:          path.Base(cert.StoragePath),
			Date:          cert.UploadedAt.Format("2006-01-02"),
			Status:        cert.Status,
			Points:        cert.ActivityPoint,
			StoragePath:   cert.StoragePath,
			URL:           s.blobs.PublicURL(cert.StoragePath),
		})
	}

	return views, nil
}

// Delete removes the metadata row first, then the blob. A blob delete
// failure after the row is gone leaves a dangling blob: the key is recorded
// as orphaned and the error returned, not masked as success.
func (s *Service) Delete(ctx context.Context, certificateID int64, storagePath string) error {
	if err := s.repo.DeleteCertificate(ctx, certificateID); err != nil {
		return fmt.Errorf("delete certificate metadata: %w", err)
	}

	if err := s.blobs.Delete(ctx, storagePath); err != nil {
		s.log.Error().Err(err).Str("key", storagePath).Msg("Blob delete failed after metadata delete")
		s.recordOrphan(storagePath)
		return fmt.Errorf("delete certificate blob: %w", err)
	}

	return nil
}

// Orphans returns a snapshot of blob keys that compensation could not
// remove. Cleanup happens out of band; nothing is retried here.
func (s *Service) Orphans() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.orphaned))
	copy(out, s.orphaned)
	return out
}

func (s *Service) recordOrphan(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orphaned = append(s.orphaned, key)
}

func (s *Service) validate(up Upload) error {
	ext := strings.ToLower(path.Ext(up.FileName))
	allowed := false
	for _, e := range s.cfg.Portal.CertificateExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s", errors.ErrFileType, up.FileName)
	}
	if int64(len(up.Data)) > s.cfg.Portal.MaxUploadBytes {
		return fmt.Errorf("%w: %s", errors.ErrFileTooLarge, up.FileName)
	}
	return nil
}

// storageKey namespaces the blob under the owner and makes collisions
// impossible with a random token, keeping the original extension.
func (s *Service) storageKey(ownerID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("certificates/%s/%s%s", ownerID, uuid.NewString(), ext)
}
