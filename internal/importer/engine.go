package importer

import (
	"context"

	"student-portal/internal/excel"
	"student-portal/internal/logger"
	"student-portal/internal/model"

	"github.com/rs/zerolog"
)

// Import status strings surfaced to the display layer.
const (
	StatusImported      = "data imported successfully"
	StatusAllDuplicates = "all records already exist"
	StatusNothingToDo   = "no importable rows found"
)

// Schema turns a raw spreadsheet row into a typed record. Normalize may
// drop a row (ok=false) or keep it while reporting warnings; Key yields
// the external id used for dedup, the zero value meaning "no id".
type Schema[T any, K comparable] interface {
	Target() model.ImportTarget
	Normalize(row excel.Row, index int) (record T, warnings []string, ok bool)
	Key(record T) K
}

// Sink is the persistence side of an import. Insert is all-or-nothing for
// the batch.
type Sink[T any, K comparable] interface {
	ExistingIDs(ctx context.Context) ([]K, error)
	Insert(ctx context.Context, records []T) error
}

// Runner is the target-agnostic face of an Engine.
type Runner interface {
	Run(ctx context.Context, data []byte) (*model.ImportReport, error)
}

// Engine runs the four-stage import pipeline: parse the first worksheet,
// normalize rows per schema, dedupe against existing external ids, and
// bulk-insert the survivors.
type Engine[T any, K comparable] struct {
	schema Schema[T, K]
	sink   Sink[T, K]
	log    zerolog.Logger
}

func New[T any, K comparable](schema Schema[T, K], sink Sink[T, K]) *Engine[T, K] {
	return &Engine[T, K]{
		schema: schema,
		sink:   sink,
		log:    logger.Get(),
	}
}

func (e *Engine[T, K]) Run(ctx context.Context, data []byte) (*model.ImportReport, error) {
	target := e.schema.Target()
	log := e.log.With().Str("target", string(target)).Logger()

	rows, err := excel.Rows(data)
	if err != nil {
		return nil, err
	}

	report := &model.ImportReport{Target: target, Parsed: len(rows)}

	var records []T
	for i, row := range rows {
		record, warnings, ok := e.schema.Normalize(row, i)
		report.Warnings = append(report.Warnings, warnings...)
		if !ok {
			report.Dropped++
			continue
		}
		records = append(records, record)
	}

	existing, err := e.sink.ExistingIDs(ctx)
	if err != nil {
		return nil, err
	}

	existingSet := make(map[K]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}

	var zero K
	var survivors []T
	for _, record := range records {
		key := e.schema.Key(record)
		if key != zero {
			if _, dup := existingSet[key]; dup {
				report.Skipped++
				continue
			}
		}
		survivors = append(survivors, record)
	}

	if len(survivors) == 0 {
		if report.Skipped > 0 {
			report.Status = StatusAllDuplicates
		} else {
			report.Status = StatusNothingToDo
		}
		log.Info().
			Int("parsed", report.Parsed).
			Int("skipped", report.Skipped).
			Int("dropped", report.Dropped).
			Msg("Import finished with nothing to insert")
		return report, nil
	}

	if err := e.sink.Insert(ctx, survivors); err != nil {
		return nil, err
	}

	report.Inserted = len(survivors)
	report.Status = StatusImported

	log.Info().
		Int("parsed", report.Parsed).
		Int("inserted", report.Inserted).
		Int("skipped", report.Skipped).
		Int("dropped", report.Dropped).
		Msg("Import finished")
	return report, nil
}
