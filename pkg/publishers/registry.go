package publishers

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Builder constructs the publisher for one config entry.
type Builder func(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error)

// Registry maps a sink type to its builder.
type Registry map[string]Builder

// DefaultRegistry knows every sink type accepted in publishers files.
func DefaultRegistry() Registry {
	return Registry{
		TypeHTTP:   newHTTPPublisher,
		TypeSQS:    newSQSPublisher,
		TypeSNS:    newSNSPublisher,
		TypePubSub: newPubSubPublisher,
	}
}

// Build constructs the publisher for cfg.
func (r Registry) Build(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	build, ok := r[cfg.Type]
	if !ok || build == nil {
		return nil, fmt.Errorf("no publisher registered for type %q", cfg.Type)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return build(ctx, cfg, ensureLogger(log))
}

// BuildAll constructs a publisher per config. If any build fails the ones
// already constructed are closed and nothing is returned.
func BuildAll(ctx context.Context, reg Registry, cfgs []PublisherConfig, log Logger) ([]Publisher, error) {
	pubs := make([]Publisher, 0, len(cfgs))
	for _, cfg := range cfgs {
		pub, err := reg.Build(ctx, cfg, log)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("build publisher %q: %w", cfg.ID, err), closeAll(pubs))
		}
		pubs = append(pubs, pub)
	}
	return pubs, nil
}

func closeAll(pubs []Publisher) error {
	var errs []error
	for _, p := range pubs {
		c, ok := p.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s publisher %q: %w", p.Type(), p.ID(), err))
		}
	}
	return errors.Join(errs...)
}
