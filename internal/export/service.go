package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/NirGallner/asana-go/internal/logger"
	"github.com/NirGallner/asana-go/pkg/sources"
)

// Service coordinates export passes across multiple sources.
type Service struct {
	processor *SourceProcessor
	log       logger.Logger
}

// NewService wires an export service.
func NewService(fetcher TaskFetcher, pub EventPublisher, log logger.Logger, deduper Deduper) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{
		processor: NewSourceProcessor(fetcher, pub, log, deduper),
		log:       log,
	}
}

// Run executes an export pass for all srcs. Failing sources do not stop the
// pass; their errors are joined.
func (s *Service) Run(ctx context.Context, srcs []sources.Source) error {
	if s == nil || s.processor == nil {
		return fmt.Errorf("export service is not initialized")
	}
	if len(srcs) == 0 {
		return fmt.Errorf("no sources configured for export")
	}

	return errors.Join(s.runAll(ctx, srcs)...)
}

func (s *Service) runAll(ctx context.Context, srcs []sources.Source) []error {
	errs := make([]error, 0, len(srcs))

	for _, src := range srcs {
		if ctx.Err() != nil {
			break
		}
		if err := s.processor.Process(ctx, src); err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("source export failed", "source_error", map[string]any{
				"source_id": src.ID,
				"error":     err.Error(),
			})
		}
	}

	return errs
}
