package worker

import (
	"context"
	"encoding/json"
	"io"

	"student-portal/internal/config"
	"student-portal/internal/db"
	"student-portal/internal/importer"
	"student-portal/internal/logger"
	"student-portal/internal/model"
	"student-portal/internal/queue"
	"student-portal/internal/storage"

	"github.com/rs/zerolog"
)

// ImportWorker consumes queued spreadsheet import jobs, downloads the
// workbook from the blob store, runs the matching import engine, and
// records the outcome on the import_files row.
type ImportWorker struct {
	cfg        *config.Config
	repo       db.Repository
	blobs      storage.BlobStore
	consumer   *queue.Consumer
	workerPool *WorkerPool
	log        zerolog.Logger
}

func NewImportWorker(
	cfg *config.Config,
	repo db.Repository,
	blobs storage.BlobStore,
	redisClient *queue.RedisClient,
) *ImportWorker {
	return &ImportWorker{
		cfg:        cfg,
		repo:       repo,
		blobs:      blobs,
		consumer:   queue.NewConsumer(redisClient, cfg),
		workerPool: NewWorkerPool(cfg.Workers.Import.Count),
		log:        logger.Get(),
	}
}

func (w *ImportWorker) Start(ctx context.Context) error {
	w.log.Info().Msg("Starting import worker")

	w.workerPool.Start(ctx)

	return w.consumer.ConsumeImportQueue(ctx, w.handleMessage)
}

func (w *ImportWorker) Stop() {
	w.log.Info().Msg("Stopping import worker")
	w.workerPool.Stop()
}

func (w *ImportWorker) handleMessage(ctx context.Context, data []byte) error {
	var job model.ImportJob
	if err := json.Unmarshal(data, &job); err != nil {
		w.log.Error().Err(err).Msg("Failed to unmarshal import job")
		return err
	}

	w.log.Info().
		Int64("file_id", job.FileID).
		Str("target", string(job.Target)).
		Str("s3_path", job.S3Path).
		Msg("Processing import job")

	// A failed submit propagates to the consumer, which moves the message
	// to the DLQ instead of losing the job.
	err := w.workerPool.Submit(ctx, func(ctx context.Context) error {
		return w.processFile(ctx, job)
	})
	if err != nil {
		w.log.Error().Err(err).Int64("file_id", job.FileID).Msg("Failed to submit import job")
		return err
	}

	return nil
}

func (w *ImportWorker) processFile(ctx context.Context, job model.ImportJob) error {
	log := w.log.With().Int64("file_id", job.FileID).Logger()

	engine, err := importer.ForTarget(job.Target, w.repo)
	if err != nil {
		return w.fail(ctx, job.FileID, err)
	}

	log.Debug().Msg("Downloading workbook")
	reader, err := w.blobs.Download(ctx, job.S3Path)
	if err != nil {
		log.Error().Err(err).Msg("Failed to download workbook")
		return w.fail(ctx, job.FileID, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read workbook data")
		return w.fail(ctx, job.FileID, err)
	}

	report, err := engine.Run(ctx, data)
	if err != nil {
		log.Error().Err(err).Msg("Import failed")
		return w.fail(ctx, job.FileID, err)
	}

	err = w.repo.UpdateImportFile(ctx, job.FileID, model.ImportStatusImported,
		report.Inserted, report.Skipped, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to update import file status")
		return err
	}

	log.Info().
		Int("inserted", report.Inserted).
		Int("skipped", report.Skipped).
		Str("status", report.Status).
		Msg("Import job finished")
	return nil
}

func (w *ImportWorker) fail(ctx context.Context, fileID int64, cause error) error {
	errorMsg := cause.Error()
	if err := w.repo.UpdateImportFile(ctx, fileID, model.ImportStatusFailed, 0, 0, &errorMsg); err != nil {
		w.log.Error().Err(err).Int64("file_id", fileID).Msg("Failed to record import failure")
	}
	return cause
}
