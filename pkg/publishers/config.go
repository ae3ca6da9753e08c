package publishers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sink types.
const (
	TypeSQS    = "sqs"
	TypeSNS    = "sns"
	TypePubSub = "gcp_pubsub"
	TypeHTTP   = "http"
)

const (
	httpDefaultMethod  = "POST"
	httpDefaultTimeout = 5
)

// SinkConfig is one entry of the publishers file.
type SinkConfig struct {
	ID      string `json:"id" yaml:"id"`
	Type    string `json:"type" yaml:"type"`
	Enabled *bool  `json:"enabled" yaml:"enabled"`

	// Operations restricts the sink to these operation names; empty means all.
	Operations []string      `json:"operations" yaml:"operations"`
	SQS        *SQSConfig    `json:"sqs" yaml:"sqs"`
	SNS        *SNSConfig    `json:"sns" yaml:"sns"`
	PubSub     *PubSubConfig `json:"gcp_pubsub" yaml:"gcp_pubsub"`
	HTTP       *HTTPConfig   `json:"http" yaml:"http"`
}

// SQSConfig targets an SQS queue. Queues whose URL ends in .fifo get
// per-list message groups.
type SQSConfig struct {
	QueueURL string `json:"uri" yaml:"uri"`
	Region   string `json:"region" yaml:"region"`
	AWSAuth  `json:",inline" yaml:",inline"`
}

// SNSConfig targets an SNS topic. FIFO topics (.fifo ARN) get per-list message groups.
type SNSConfig struct {
	TopicARN string `json:"topic_arn" yaml:"topic_arn"`
	Region   string `json:"region" yaml:"region"`
	AWSAuth  `json:",inline" yaml:",inline"`
}

// PubSubConfig targets a Pub/Sub topic.
type PubSubConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`

	// OrderByList sets the ordering key to the list id.
	OrderByList bool `json:"order_by_list" yaml:"order_by_list"`
}

// HTTPConfig targets a webhook.
type HTTPConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// Config is the parsed publishers file.
type Config struct {
	sinks []SinkConfig
	byID  map[string]int
}

type configFile struct {
	Publishers []SinkConfig `json:"publishers" yaml:"publishers"`
}

// LoadConfig reads a YAML or JSON publishers file.
func LoadConfig(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("publishers file path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read publishers file: %w", err)
	}
	return ParseConfig(raw, filepath.Ext(path))
}

// ParseConfig decodes publishers file content; ext selects the format, empty tries both.
func ParseConfig(data []byte, ext string) (*Config, error) {
	file, err := decodeConfigFile(data, strings.ToLower(strings.TrimSpace(ext)))
	if err != nil {
		return nil, err
	}
	if len(file.Publishers) == 0 {
		return nil, errors.New("publishers file contains no publishers entries")
	}

	cfg := &Config{
		sinks: make([]SinkConfig, 0, len(file.Publishers)),
		byID:  make(map[string]int, len(file.Publishers)),
	}
	for i, raw := range file.Publishers {
		sink := raw.normalized()
		if err := sink.validate(); err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		if _, dup := cfg.byID[sink.ID]; dup {
			return nil, fmt.Errorf("duplicate publisher id %q", sink.ID)
		}
		cfg.byID[sink.ID] = len(cfg.sinks)
		cfg.sinks = append(cfg.sinks, sink)
	}
	return cfg, nil
}

func decodeConfigFile(data []byte, ext string) (configFile, error) {
	var errs []error
	for _, d := range []struct {
		exts []string
		fn   func([]byte, any) error
	}{
		{exts: []string{".yaml", ".yml"}, fn: yaml.Unmarshal},
		{exts: []string{".json"}, fn: json.Unmarshal},
	} {
		if ext != "" && !slices.Contains(d.exts, ext) {
			continue
		}
		var file configFile
		if err := d.fn(data, &file); err != nil {
			errs = append(errs, fmt.Errorf("decode %s publishers: %w", strings.TrimPrefix(d.exts[0], "."), err))
			continue
		}
		return file, nil
	}
	if len(errs) == 0 {
		return configFile{}, fmt.Errorf("publishers file format %q not recognized (expected YAML or JSON)", ext)
	}
	return configFile{}, errors.Join(errs...)
}

// Sink returns the entry with the given id.
func (c *Config) Sink(id string) (SinkConfig, bool) {
	if c == nil {
		return SinkConfig{}, false
	}
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return SinkConfig{}, false
	}
	return c.sinks[i], true
}

// Enabled returns the entries that are not switched off, in file order.
func (c *Config) Enabled() []SinkConfig {
	if c == nil {
		return nil
	}
	out := make([]SinkConfig, 0, len(c.sinks))
	for _, s := range c.sinks {
		if s.IsEnabled() {
			out = append(out, s)
		}
	}
	return out
}

// IsEnabled defaults to true when the flag is absent.
func (s SinkConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Accepts reports whether the sink subscribes to operation.
func (s SinkConfig) Accepts(operation string) bool {
	return len(s.Operations) == 0 || slices.Contains(s.Operations, operation)
}

func (s SinkConfig) normalized() SinkConfig {
	s.ID = strings.TrimSpace(s.ID)
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))

	ops := make([]string, 0, len(s.Operations))
	for _, op := range s.Operations {
		if op = strings.ToLower(strings.TrimSpace(op)); op != "" {
			ops = append(ops, op)
		}
	}
	s.Operations = ops

	if s.SQS != nil {
		c := *s.SQS
		c.QueueURL = strings.TrimSpace(c.QueueURL)
		c.Region = strings.TrimSpace(c.Region)
		s.SQS = &c
	}
	if s.SNS != nil {
		c := *s.SNS
		c.TopicARN = strings.TrimSpace(c.TopicARN)
		c.Region = strings.TrimSpace(c.Region)
		s.SNS = &c
	}
	if s.PubSub != nil {
		c := *s.PubSub
		c.ProjectID = strings.TrimSpace(c.ProjectID)
		c.Topic = strings.TrimSpace(c.Topic)
		c.CredentialsFile = strings.TrimSpace(c.CredentialsFile)
		s.PubSub = &c
	}
	if s.HTTP != nil {
		c := *s.HTTP
		c.URL = strings.TrimSpace(c.URL)
		c.Method = strings.ToUpper(strings.TrimSpace(c.Method))
		if c.Method == "" {
			c.Method = httpDefaultMethod
		}
		if c.TimeoutSeconds <= 0 {
			c.TimeoutSeconds = httpDefaultTimeout
		}
		c.Headers = trimHeaders(c.Headers)
		s.HTTP = &c
	}
	return s
}

func (s SinkConfig) validate() error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	switch s.Type {
	case "":
		return fmt.Errorf("type is required for publisher %q", s.ID)
	case TypeSQS:
		if s.SQS == nil || s.SQS.QueueURL == "" || s.SQS.Region == "" {
			return fmt.Errorf("sqs.uri and sqs.region are required for publisher %q", s.ID)
		}
	case TypeSNS:
		if s.SNS == nil || s.SNS.TopicARN == "" || s.SNS.Region == "" {
			return fmt.Errorf("sns.topic_arn and sns.region are required for publisher %q", s.ID)
		}
	case TypePubSub:
		if s.PubSub == nil || s.PubSub.ProjectID == "" || s.PubSub.Topic == "" {
			return fmt.Errorf("gcp_pubsub.project_id and gcp_pubsub.topic are required for publisher %q", s.ID)
		}
	case TypeHTTP:
		if s.HTTP == nil || s.HTTP.URL == "" {
			return fmt.Errorf("http.url is required for publisher %q", s.ID)
		}
	default:
		return fmt.Errorf("unsupported publisher type %q for publisher %q", s.Type, s.ID)
	}
	return nil
}

func trimHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
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
