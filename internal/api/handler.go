package api

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"student-portal/internal/activity"
	"student-portal/internal/certificate"
	"student-portal/internal/config"
	"student-portal/internal/db"
	"student-portal/internal/logger"
	"student-portal/internal/model"
	"student-portal/internal/queue"
	"student-portal/internal/storage"
	pkgerrors "student-portal/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Handler struct {
	certs      *certificate.Service
	aggregator *activity.Aggregator
	repo       db.Repository
	blobs      storage.BlobStore
	producer   *queue.Producer
	cfg        *config.Config
	log        zerolog.Logger
}

func NewHandler(
	repo db.Repository,
	blobs storage.BlobStore,
	producer *queue.Producer,
	cfg *config.Config,
) *Handler {
	return &Handler{
		certs:      certificate.NewService(repo, blobs, cfg),
		aggregator: activity.NewAggregator(repo, cfg.Portal.RequiredPoints),
		repo:       repo,
		blobs:      blobs,
		producer:   producer,
		cfg:        cfg,
		log:        logger.Get(),
	}
}

// UploadCertificates accepts multipart files under the "files" field and
// runs each through the upload saga. Partial success is the normal case:
// the response always carries both the uploaded views and per-file errors.
func (h *Handler) UploadCertificates(c *gin.Context) {
	ownerID := c.Param("owner_id")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	var uploads []certificate.Upload
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to open %s", fh.Filename)})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to read %s", fh.Filename)})
			return
		}
		uploads = append(uploads, certificate.Upload{FileName: fh.Filename, Data: data})
	}

	result := h.certs.UploadMany(c.Request.Context(), uploads, ownerID)

	h.log.Info().
		Str("owner_id", ownerID).
		Int("uploaded", len(result.Uploaded)).
		Int("failed", len(result.Errors)).
		Msg("Certificate batch processed")

	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListCertificates(c *gin.Context) {
	ownerID := c.Param("owner_id")

	views, err := h.certs.FetchByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.log.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to fetch certificates")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"certificates": views})
}

func (h *Handler) DeleteCertificate(c *gin.Context) {
	certID, err := strconv.ParseInt(c.Param("certificate_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid certificate ID"})
		return
	}

	storagePath := c.Query("path")
	if storagePath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing storage path"})
		return
	}

	if err := h.certs.Delete(c.Request.Context(), certID, storagePath); err != nil {
		h.log.Error().Err(err).Int64("certificate_id", certID).Msg("Failed to delete certificate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListOrphans exposes blob keys that compensation could not clean up, for
// out-of-band remediation.
func (h *Handler) ListOrphans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orphans": h.certs.Orphans()})
}

func (h *Handler) GetActivitySummary(c *gin.Context) {
	ownerID := c.Param("owner_id")

	summary, err := h.aggregator.Summary(c.Request.Context(), ownerID)
	if err != nil {
		h.log.Error().Err(err).Str("owner_id", ownerID).Msg("Failed to compute activity summary")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// StartImport stores the uploaded workbook, records an import_files row,
// and enqueues the job for the import worker.
func (h *Handler) StartImport(c *gin.Context) {
	target := model.ImportTarget(c.Param("target"))
	switch target {
	case model.ImportTargetTeacher, model.ImportTargetStudent, model.ImportTargetScholarship:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown import target"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	ext := strings.ToLower(path.Ext(fh.Filename))
	if !h.importExtAllowed(ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only spreadsheet files are accepted"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open file"})
		return
	}
	defer f.Close()

	key := fmt.Sprintf("imports/%s/%s%s", target, uuid.NewString(), ext)
	if err := h.blobs.Upload(c.Request.Context(), key, f); err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("Failed to store workbook")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	fileID, err := h.repo.InsertImportFile(c.Request.Context(), model.ImportFile{
		S3Path: key,
		Target: target,
		Status: model.ImportStatusUploaded,
	})
	if err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("Failed to record import file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record import"})
		return
	}

	job := model.ImportJob{FileID: fileID, Target: target, S3Path: key}
	if err := h.producer.EnqueueImportJob(c.Request.Context(), job); err != nil {
		h.log.Error().Err(err).Int64("file_id", fileID).Msg("Failed to enqueue import job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue import job"})
		return
	}

	h.log.Info().
		Int64("file_id", fileID).
		Str("target", string(target)).
		Msg("Import job enqueued")

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Import queued successfully",
		"file_id": fileID,
	})
}

func (h *Handler) GetImportStatus(c *gin.Context) {
	fileID, err := strconv.ParseInt(c.Param("file_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file ID"})
		return
	}

	file, err := h.repo.GetImportFile(c.Request.Context(), fileID)
	if err != nil {
		h.log.Error().Err(err).Int64("file_id", fileID).Msg("Import file not found")
		c.JSON(http.StatusNotFound, gin.H{"error": pkgerrors.ErrImportFileNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, file)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.App.Name,
		"version": h.cfg.App.Version,
	})
}

func (h *Handler) importExtAllowed(ext string) bool {
	for _, e := range h.cfg.Portal.ImportExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
