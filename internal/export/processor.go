package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/NirGallner/asana-go/internal/domain"
	"github.com/NirGallner/asana-go/internal/logger"
	"github.com/NirGallner/asana-go/pkg/publishers"
	"github.com/NirGallner/asana-go/pkg/sources"
)

// SourceProcessor exports one source: fetch, flatten, dedupe, publish.
type SourceProcessor struct {
	fetcher   TaskFetcher
	publisher EventPublisher
	log       logger.Logger
	deduper   Deduper
}

// NewSourceProcessor wires a processor. A nil deduper exports every task on every pass.
func NewSourceProcessor(fetcher TaskFetcher, pub EventPublisher, log logger.Logger, deduper Deduper) *SourceProcessor {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &SourceProcessor{
		fetcher:   fetcher,
		publisher: pub,
		log:       log,
		deduper:   deduper,
	}
}

// Process runs a single export pass for src.
func (p *SourceProcessor) Process(ctx context.Context, src sources.Source) error {
	if p == nil || p.fetcher == nil {
		return fmt.Errorf("source processor is not initialized")
	}

	tasks, err := p.fetcher.FetchTasks(ctx, src)
	if err != nil {
		return fmt.Errorf("fetch source %s: %w", src.ID, err)
	}

	records := make([]domain.TaskRecord, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed && !src.IncludeCompleted {
			continue
		}
		rec, notesErr := toRecord(src.ProjectGID, t)
		if notesErr != nil {
			p.log.WarnObj("task notes render failed", "notes_error", map[string]any{
				"source_id": src.ID,
				"task_gid":  t.GID,
				"error":     notesErr.Error(),
			})
		}
		records = append(records, rec)
	}

	fresh := p.filterNewTasks(src, records)
	published, err := p.publish(ctx, src, fresh)

	p.log.InfoObj("source export completed", "source_result", map[string]any{
		"source_id":       src.ID,
		"tasks_fetched":   len(tasks),
		"tasks_new":       len(fresh),
		"tasks_published": published,
	})
	return err
}

func (p *SourceProcessor) filterNewTasks(src sources.Source, records []domain.TaskRecord) []domain.TaskRecord {
	if p.deduper == nil {
		return records
	}

	out := make([]domain.TaskRecord, 0, len(records))
	for _, rec := range records {
		seen, err := p.deduper.SeenTask(rec.Version())
		if err != nil {
			// publish anyway; a duplicate beats a dropped task
			p.log.WarnObj("dedupe lookup failed", "dedupe_error", map[string]any{
				"source_id": src.ID,
				"task_gid":  rec.GID,
				"error":     err.Error(),
			})
			out = append(out, rec)
			continue
		}
		if !seen {
			out = append(out, rec)
		}
	}
	return out
}

func (p *SourceProcessor) publish(ctx context.Context, src sources.Source, records []domain.TaskRecord) (int, error) {
	if p.publisher == nil || len(records) == 0 {
		return 0, nil
	}

	var errs []error
	published := 0
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		evt := publishers.NewEvent(src.ID, src.Name, rec)
		delivered, err := p.publisher.Publish(ctx, evt)
		if err != nil {
			errs = append(errs, fmt.Errorf("publish task %s: %w", rec.GID, err))
		}
		if delivered == 0 {
			continue
		}
		published++
		if p.deduper != nil {
			if err := p.deduper.MarkTask(rec.Version()); err != nil {
				errs = append(errs, fmt.Errorf("mark task %s: %w", rec.GID, err))
			}
		}
	}
	return published, errors.Join(errs...)
}
