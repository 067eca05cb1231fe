package publishers

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported sink types.
const (
	TypeHTTP   = "http"
	TypeSQS    = "sqs"
	TypeSNS    = "sns"
	TypePubSub = "pubsub"
)

const webhookDefaultTimeoutSeconds = 5

// PublisherConfig is one entry of the publishers file. Only the block named by
// Type is read; the others are ignored.
type PublisherConfig struct {
	ID      string                 `yaml:"id"`
	Type    string                 `yaml:"type"`
	Enabled *bool                  `yaml:"enabled"`
	HTTP    *HTTPPublisherConfig   `yaml:"http"`
	SQS     *SQSPublisherConfig    `yaml:"sqs"`
	SNS     *SNSPublisherConfig    `yaml:"sns"`
	PubSub  *PubSubPublisherConfig `yaml:"pubsub"`
}

// HTTPPublisherConfig points at a webhook receiving events as JSON.
type HTTPPublisherConfig struct {
	URL            string            `yaml:"url"`
	Method         string            `yaml:"method"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
}

// AWSCredentials optionally pins static credentials instead of the default AWS chain.
type AWSCredentials struct {
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	SessionToken    string `yaml:"session_token"`
}

// SQSPublisherConfig names the queue events are sent to.
type SQSPublisherConfig struct {
	QueueURL    string          `yaml:"uri"`
	Region      string          `yaml:"region"`
	Credentials *AWSCredentials `yaml:"credentials"`
}

// SNSPublisherConfig names the topic events are published on.
type SNSPublisherConfig struct {
	TopicARN    string          `yaml:"topic_arn"`
	Region      string          `yaml:"region"`
	Credentials *AWSCredentials `yaml:"credentials"`
}

// PubSubPublisherConfig names the Google Cloud Pub/Sub topic events are published on.
type PubSubPublisherConfig struct {
	ProjectID       string `yaml:"project_id"`
	Topic           string `yaml:"topic"`
	CredentialsFile string `yaml:"credentials_file"`
}

// sinkBlock is the type-specific part of a PublisherConfig.
type sinkBlock interface {
	normalize()
	check() error
}

// LoadConfig reads a YAML (or JSON) publishers file and returns its enabled
// entries, normalized and validated.
func LoadConfig(path string) ([]PublisherConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read publishers file: %w", err)
	}

	var doc struct {
		Publishers []PublisherConfig `yaml:"publishers"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode publishers file: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Publishers))
	var enabled []PublisherConfig
	for i := range doc.Publishers {
		cfg := doc.Publishers[i]
		if err := cfg.prepare(); err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		if _, dup := seen[cfg.ID]; dup {
			return nil, fmt.Errorf("publishers[%d]: duplicate id %q", i, cfg.ID)
		}
		seen[cfg.ID] = struct{}{}

		if cfg.Enabled != nil && !*cfg.Enabled {
			continue
		}
		enabled = append(enabled, cfg)
	}
	return enabled, nil
}

// prepare normalizes cfg in place and checks the block its type requires.
func (cfg *PublisherConfig) prepare() error {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))
	if cfg.ID == "" {
		return fmt.Errorf("id is required")
	}

	block, err := cfg.block()
	if err != nil {
		return err
	}
	block.normalize()
	if err := block.check(); err != nil {
		return fmt.Errorf("publisher %q: %w", cfg.ID, err)
	}
	return nil
}

func (cfg *PublisherConfig) block() (sinkBlock, error) {
	var (
		block   sinkBlock
		missing bool
	)
	switch cfg.Type {
	case TypeHTTP:
		block, missing = cfg.HTTP, cfg.HTTP == nil
	case TypeSQS:
		block, missing = cfg.SQS, cfg.SQS == nil
	case TypeSNS:
		block, missing = cfg.SNS, cfg.SNS == nil
	case TypePubSub:
		block, missing = cfg.PubSub, cfg.PubSub == nil
	case "":
		return nil, fmt.Errorf("publisher %q has no type", cfg.ID)
	default:
		return nil, fmt.Errorf("publisher %q has unknown type %q", cfg.ID, cfg.Type)
	}
	if missing {
		return nil, fmt.Errorf("publisher %q of type %s needs a %q block", cfg.ID, cfg.Type, cfg.Type)
	}
	return block, nil
}

func (c *HTTPPublisherConfig) normalize() {
	c.URL = strings.TrimSpace(c.URL)
	c.Method = strings.ToUpper(strings.TrimSpace(c.Method))
	if c.Method == "" {
		c.Method = http.MethodPost
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = webhookDefaultTimeoutSeconds
	}

	headers := make(map[string]string, len(c.Headers))
	for k, v := range c.Headers {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			headers[k] = v
		}
	}
	c.Headers = nil
	if len(headers) > 0 {
		c.Headers = headers
	}
}

func (c *HTTPPublisherConfig) check() error {
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("http.url must be an absolute http(s) url, got %q", c.URL)
	}
	return nil
}

func (c *SQSPublisherConfig) normalize() {
	c.QueueURL = strings.TrimSpace(c.QueueURL)
	c.Region = strings.TrimSpace(c.Region)
}

func (c *SQSPublisherConfig) check() error {
	if c.QueueURL == "" || c.Region == "" {
		return fmt.Errorf("sqs.uri and sqs.region are required")
	}
	return nil
}

func (c *SNSPublisherConfig) normalize() {
	c.TopicARN = strings.TrimSpace(c.TopicARN)
	c.Region = strings.TrimSpace(c.Region)
}

func (c *SNSPublisherConfig) check() error {
	if c.TopicARN == "" || c.Region == "" {
		return fmt.Errorf("sns.topic_arn and sns.region are required")
	}
	return nil
}

func (c *PubSubPublisherConfig) normalize() {
	c.ProjectID = strings.TrimSpace(c.ProjectID)
	c.Topic = strings.TrimSpace(c.Topic)
	c.CredentialsFile = strings.TrimSpace(c.CredentialsFile)
}

func (c *PubSubPublisherConfig) check() error {
	if c.ProjectID == "" || c.Topic == "" {
		return fmt.Errorf("pubsub.project_id and pubsub.topic are required")
	}
	return nil
}
