package app

import (
	"fmt"

	"github.com/NirGallner/asana-go/internal/config"
	"github.com/NirGallner/asana-go/internal/logger"
	"github.com/NirGallner/asana-go/pkg/asana"
	"github.com/NirGallner/asana-go/pkg/httpclient"
)

// NewAsanaClient builds the API client from config using the resty transport.
func NewAsanaClient(cfg *config.Config, log logger.Logger) (*asana.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}

	opts := []asana.ClientOption{
		asana.WithBaseURL(cfg.AsanaBaseURL),
		asana.WithAccessToken(cfg.AsanaAccessToken),
		asana.WithDispatcher(httpclient.NewRestyClient(cfg.HTTPTimeout)),
		asana.WithUserAgent(cfg.AppName),
	}
	if log != nil {
		opts = append(opts, asana.WithLogger(log))
	}
	return asana.NewClient(opts...)
}
