package command

import (
	"context"
	"fmt"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

const defaultCopyBatchSize = 200

type CopyRecordsResult struct {
	Copied  int
	Skipped int
}

// CopyRecords copies every record from one store into another, for moving between store
// drivers. Records whose ID already exists in the target are left untouched, so an
// interrupted copy can be re-run.
type CopyRecords struct {
	Source    datasources.RecordQuerier
	Target    datasources.Store
	BatchSize int
}

func NewCopyRecords(source datasources.RecordQuerier, target datasources.Store) *CopyRecords {
	return &CopyRecords{Source: source, Target: target, BatchSize: defaultCopyBatchSize}
}

func allKinds() datasources.QuerySpec {
	spec := make(datasources.QuerySpec, len(domain.Kinds))
	for _, k := range domain.Kinds {
		spec[k] = datasources.Filter{}
	}
	return spec
}

func (c *CopyRecords) Execute(ctx context.Context, _ Empty) (CopyRecordsResult, error) {
	logger := domain.LoggerFromContext(ctx)

	source, err := c.Source.Query(ctx, allKinds())
	if err != nil {
		return CopyRecordsResult{}, fmt.Errorf("querying source store: %w", err)
	}
	target, err := c.Target.Query(ctx, allKinds())
	if err != nil {
		return CopyRecordsResult{}, fmt.Errorf("querying target store: %w", err)
	}

	existing := make(map[string]struct{})
	for _, rec := range target.Records() {
		existing[interlockKey(string(rec.RecordKind()), rec.RecordID())] = struct{}{}
	}

	batchSize := c.BatchSize
	if batchSize <= 0 {
		batchSize = defaultCopyBatchSize
	}

	var (
		result CopyRecordsResult
		batch  datasources.Batch
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := commit(ctx, c.Target, batch); err != nil {
			return err
		}
		result.Copied += len(batch)
		logger.InfoContext(ctx, "copied batch", "records", len(batch), "copied_total", result.Copied)
		batch = nil
		return nil
	}

	// Records are visited in kind order, so users and recommendations land before the
	// interactions that refer to them.
	for _, rec := range source.Records() {
		if _, ok := existing[interlockKey(string(rec.RecordKind()), rec.RecordID())]; ok {
			result.Skipped++
			continue
		}

		op, err := datasources.CreateOp(rec)
		if err != nil {
			logger.WarnContext(ctx, "skipping malformed record",
				"kind", rec.RecordKind(), "id", rec.RecordID(), "error", err)
			result.Skipped++
			continue
		}
		batch = append(batch, op)

		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return result, err
			}
		}
	}
	if err := flush(); err != nil {
		return result, err
	}

	return result, nil
}
