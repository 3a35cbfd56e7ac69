package publishers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sink types accepted in publishers files.
const (
	TypeHTTP   = "http"
	TypeSQS    = "sqs"
	TypeSNS    = "sns"
	TypePubSub = "pubsub"
)

const (
	defaultHTTPMethod  = "POST"
	defaultHTTPTimeout = 5
)

// PublisherConfig is one entry of the publishers file. Exactly the block
// matching Type is read.
type PublisherConfig struct {
	ID      string                 `json:"id" yaml:"id"`
	Type    string                 `json:"type" yaml:"type"`
	Enabled *bool                  `json:"enabled" yaml:"enabled"`
	HTTP    *HTTPPublisherConfig   `json:"http" yaml:"http"`
	SQS     *SQSPublisherConfig    `json:"sqs" yaml:"sqs"`
	SNS     *SNSPublisherConfig    `json:"sns" yaml:"sns"`
	PubSub  *PubSubPublisherConfig `json:"pubsub" yaml:"pubsub"`
}

// HTTPPublisherConfig posts each event as JSON to a webhook.
type HTTPPublisherConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// AWSConfig is shared by the SQS and SNS sinks. Without static keys the
// default credential chain applies; Endpoint targets emulators such as localstack.
type AWSConfig struct {
	Region          string `json:"region" yaml:"region"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

type SQSPublisherConfig struct {
	AWSConfig `yaml:",inline"`
	QueueURL  string `json:"uri" yaml:"uri"`
}

type SNSPublisherConfig struct {
	AWSConfig `yaml:",inline"`
	TopicARN  string `json:"topic_arn" yaml:"topic_arn"`
}

type PubSubPublisherConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
}

// IsEnabled treats a missing enabled flag as true.
func (cfg PublisherConfig) IsEnabled() bool {
	return cfg.Enabled == nil || *cfg.Enabled
}

// ConfigSet is the validated content of a publishers file, in file order.
type ConfigSet struct {
	entries []PublisherConfig
}

// LoadConfigs reads a publishers file. .json files are decoded as JSON,
// anything else as YAML.
func LoadConfigs(path string) (*ConfigSet, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("publishers file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read publishers file: %w", err)
	}

	var file struct {
		Publishers []PublisherConfig `json:"publishers" yaml:"publishers"`
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(raw, &file)
	} else {
		err = yaml.Unmarshal(raw, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("decode publishers file %s: %w", filepath.Base(path), err)
	}

	return NewConfigSet(file.Publishers)
}

// NewConfigSet normalizes and validates entries. Ids must be unique.
func NewConfigSet(entries []PublisherConfig) (*ConfigSet, error) {
	if len(entries) == 0 {
		return nil, errors.New("publishers file contains no publishers entries")
	}

	set := &ConfigSet{entries: make([]PublisherConfig, 0, len(entries))}
	ids := make(map[string]bool, len(entries))
	for i, cfg := range entries {
		cfg = cfg.normalize()
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		if ids[cfg.ID] {
			return nil, fmt.Errorf("duplicate publisher id %q", cfg.ID)
		}
		ids[cfg.ID] = true
		set.entries = append(set.entries, cfg)
	}
	return set, nil
}

// All returns a copy of every entry.
func (s *ConfigSet) All() []PublisherConfig {
	if s == nil {
		return nil
	}
	return append([]PublisherConfig(nil), s.entries...)
}

// Enabled returns the entries that should be built.
func (s *ConfigSet) Enabled() []PublisherConfig {
	if s == nil {
		return nil
	}
	var out []PublisherConfig
	for _, cfg := range s.entries {
		if cfg.IsEnabled() {
			out = append(out, cfg)
		}
	}
	return out
}

func (s *ConfigSet) ByID(id string) (PublisherConfig, bool) {
	if s != nil {
		id = strings.TrimSpace(id)
		for _, cfg := range s.entries {
			if cfg.ID == id {
				return cfg, true
			}
		}
	}
	return PublisherConfig{}, false
}

func (cfg PublisherConfig) normalize() PublisherConfig {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))

	if h := cfg.HTTP; h != nil {
		c := *h
		c.URL = strings.TrimSpace(c.URL)
		if c.Method = strings.ToUpper(strings.TrimSpace(c.Method)); c.Method == "" {
			c.Method = defaultHTTPMethod
		}
		if c.TimeoutSeconds <= 0 {
			c.TimeoutSeconds = defaultHTTPTimeout
		}
		c.Headers = cleanHeaders(c.Headers)
		cfg.HTTP = &c
	}
	if q := cfg.SQS; q != nil {
		c := *q
		c.AWSConfig = c.AWSConfig.normalize()
		c.QueueURL = strings.TrimSpace(c.QueueURL)
		cfg.SQS = &c
	}
	if t := cfg.SNS; t != nil {
		c := *t
		c.AWSConfig = c.AWSConfig.normalize()
		c.TopicARN = strings.TrimSpace(c.TopicARN)
		cfg.SNS = &c
	}
	if p := cfg.PubSub; p != nil {
		c := *p
		c.ProjectID = strings.TrimSpace(c.ProjectID)
		c.Topic = strings.TrimSpace(c.Topic)
		c.CredentialsFile = strings.TrimSpace(c.CredentialsFile)
		c.Endpoint = strings.TrimSpace(c.Endpoint)
		cfg.PubSub = &c
	}
	return cfg
}

func (c AWSConfig) normalize() AWSConfig {
	c.Region = strings.TrimSpace(c.Region)
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	c.AccessKeyID = strings.TrimSpace(c.AccessKeyID)
	c.SecretAccessKey = strings.TrimSpace(c.SecretAccessKey)
	return c
}

func cleanHeaders(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (cfg PublisherConfig) validate() error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}

	var missing []string
	switch cfg.Type {
	case "":
		return fmt.Errorf("type is required for publisher %q", cfg.ID)
	case TypeHTTP:
		if cfg.HTTP == nil {
			return fmt.Errorf("http block required for publisher %q", cfg.ID)
		}
		missing = required(map[string]string{"http.url": cfg.HTTP.URL})
	case TypeSQS:
		if cfg.SQS == nil {
			return fmt.Errorf("sqs block required for publisher %q", cfg.ID)
		}
		missing = required(map[string]string{"sqs.uri": cfg.SQS.QueueURL, "sqs.region": cfg.SQS.Region})
	case TypeSNS:
		if cfg.SNS == nil {
			return fmt.Errorf("sns block required for publisher %q", cfg.ID)
		}
		missing = required(map[string]string{"sns.topic_arn": cfg.SNS.TopicARN, "sns.region": cfg.SNS.Region})
	case TypePubSub:
		if cfg.PubSub == nil {
			return fmt.Errorf("pubsub block required for publisher %q", cfg.ID)
		}
		missing = required(map[string]string{"pubsub.project_id": cfg.PubSub.ProjectID, "pubsub.topic": cfg.PubSub.Topic})
	default:
		return fmt.Errorf("unsupported publisher type %q for publisher %q", cfg.Type, cfg.ID)
	}

	if len(missing) > 0 {
		return fmt.Errorf("publisher %q is missing %s", cfg.ID, strings.Join(missing, ", "))
	}
	return nil
}

// required lists the keys whose values are empty, sorted.
func required(fields map[string]string) []string {
	var missing []string
	for k, v := range fields {
		if v == "" {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	return missing
}
