package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NirGallner/asana-go/internal/config"
	"github.com/NirGallner/asana-go/internal/export"
	"github.com/NirGallner/asana-go/internal/logger"
	"github.com/NirGallner/asana-go/internal/storage"
	"github.com/NirGallner/asana-go/pkg/publishers"
	"github.com/NirGallner/asana-go/pkg/sources"
)

// Exporter is the task export runtime. It owns the export loop, the
// publishers fanout and the dedupe store.
type Exporter struct {
	cfg            *config.Config
	sourceReg      *sources.Registry
	fanout         *publishers.Fanout
	exportService  *export.Service
	exportInterval time.Duration
	log            logger.Logger
	store          storage.Store
}

// NewExporter builds an exporter runtime from config files.
func NewExporter(ctx context.Context, cfg *config.Config, log logger.Logger) (*Exporter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := NewAsanaClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init asana client: %w", err)
	}

	sourceReg, err := sources.LoadRegistry(cfg.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("load sources registry: %w", err)
	}
	sourceList := sourceReg.All()
	sourceIDs := make([]string, 0, len(sourceList))
	for _, s := range sourceList {
		sourceIDs = append(sourceIDs, s.ID)
	}
	log.InfoObj("sources registry loaded", "sources_meta", map[string]any{
		"count": len(sourceIDs),
		"ids":   sourceIDs,
	})

	publisherSet, err := publishers.LoadConfigs(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers file: %w", err)
	}
	enabledPublishers := publisherSet.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		TaskTTL:         cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("init storage: %w", err), fanout.Close())
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"task_ttl_seconds":         int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	return &Exporter{
		cfg:            cfg,
		sourceReg:      sourceReg,
		fanout:         fanout,
		exportService:  export.NewService(export.NewAsanaFetcher(client), fanout, log, store),
		exportInterval: cfg.ExportInterval,
		log:            log,
		store:          store,
	}, nil
}

// Run starts the export loop until the context is cancelled.
func (e *Exporter) Run(ctx context.Context) error {
	if e == nil || e.exportService == nil {
		return fmt.Errorf("exporter is not initialized")
	}
	defer e.close()

	srcs := e.sourceReg.All()
	if len(srcs) == 0 {
		e.log.WarnObj("no sources configured; exporter idle", "sources_file", e.cfg.SourcesFile)
		<-ctx.Done()
		return ctx.Err()
	}

	e.log.InfoObj("exporter loop starting", "exporter_state", map[string]any{
		"sources_count":    len(srcs),
		"publishers_count": e.fanout.Size(),
		"export_interval":  e.exportInterval.String(),
	})

	if err := e.RunOnce(ctx); err != nil {
		e.log.ErrorObj("initial export failed", "error", err)
	}

	ticker := time.NewTicker(e.exportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.log.InfoObj("exporter loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := e.RunOnce(ctx); err != nil {
				e.log.ErrorObj("scheduled export failed", "error", err)
			}
		}
	}
}

// RunOnce performs a single export pass across all sources.
func (e *Exporter) RunOnce(ctx context.Context) error {
	srcs := e.sourceReg.All()
	start := time.Now()
	e.log.InfoObj("export started", "export_meta", map[string]any{
		"sources_count": len(srcs),
		"started_at":    start.UTC(),
	})
	if err := e.exportService.Run(ctx, srcs); err != nil {
		return err
	}
	e.log.InfoObj("export completed", "export_meta", map[string]any{
		"sources_count": len(srcs),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return nil
}

// close releases publishers and the storage backend, logging any errors encountered.
func (e *Exporter) close() {
	if err := e.fanout.Close(); err != nil {
		e.log.ErrorObj("publishers close failed", "error", err)
	}
	if e.store == nil {
		return
	}
	if err := e.store.Close(); err != nil {
		e.log.ErrorObj("storage close failed", "error", err)
	}
}
