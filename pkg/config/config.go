package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public URL used in rss and opml links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:research-listener.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Daily run configuration"`

	Feed FeedConfig `yaml:"feed" json:"feed" jsonschema:"description=Catalog feed configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=Embedding and generation backend, optional"`

	Relevance RelevanceConfig `yaml:"relevance" json:"relevance" jsonschema:"description=Relevance filter settings"`

	Summary SummaryConfig `yaml:"summary" json:"summary" jsonschema:"description=Summary settings"`

	Report struct {
		Dir string `yaml:"dir" json:"dir" jsonschema:"default=./daily_reports,description=Directory for rendered digests"`
	} `yaml:"report" json:"report" jsonschema:"description=Report storage"`

	SMTP SMTPConfig `yaml:"smtp" json:"smtp" jsonschema:"description=Outgoing mail configuration"`
}

// ScheduleConfig holds daily run settings
type ScheduleConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Run the digest job every day"`
	DailyAt string `yaml:"daily_at" json:"daily_at" jsonschema:"default=08:00,description=UTC time of day to run the digest job (HH:MM)"`
}

// FeedConfig holds catalog client settings
type FeedConfig struct {
	Endpoint   string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://export.arxiv.org/api/query,description=arXiv API query endpoint"`
	MaxResults int           `yaml:"max_results" json:"max_results" jsonschema:"default=120,minimum=1,description=Maximum papers fetched per subscriber"`
	WindowDays int           `yaml:"window_days" json:"window_days" jsonschema:"default=1,minimum=1,description=Trailing window in UTC calendar days"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=20s,description=Request timeout"`
	Retries    int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Attempts for transient failures"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=research-listener/1.0,description=User agent for catalog requests"`
}

// LLMConfig holds OpenAI-compatible backend settings. Empty api key disables semantic features.
type LLMConfig struct {
	Endpoint       string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint (optional)"`
	APIKey         string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	ChatModel      string        `yaml:"chat_model" json:"chat_model" jsonschema:"default=gpt-4o-mini,description=Model used for summaries"`
	EmbeddingModel string        `yaml:"embedding_model" json:"embedding_model" jsonschema:"default=text-embedding-3-small,description=Model used for embeddings"`
	Temperature    float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for summary generation"`
	MaxTokens      int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=160,description=Maximum tokens in a generated summary"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
}

// RelevanceConfig holds semantic filter settings
type RelevanceConfig struct {
	TopK          int     `yaml:"top_k" json:"top_k" jsonschema:"default=15,minimum=1,description=Maximum papers kept by semantic filter"`
	Threshold     float64 `yaml:"threshold" json:"threshold" jsonschema:"default=0.78,minimum=0,maximum=1,description=Minimum cosine similarity"`
	AbstractLimit int     `yaml:"abstract_limit" json:"abstract_limit" jsonschema:"default=4096,description=Abstract characters sent for embedding"`
	BatchSize     int     `yaml:"batch_size" json:"batch_size" jsonschema:"default=2048,minimum=1,description=Abstracts per embedding request"`
}

// SummaryConfig holds summary formatting settings
type SummaryConfig struct {
	Sentences  int `yaml:"sentences" json:"sentences" jsonschema:"default=3,minimum=1,maximum=3,description=Sentences kept by extractive summaries"`
	MaxAuthors int `yaml:"max_authors" json:"max_authors" jsonschema:"default=4,minimum=1,description=Authors listed before et al."`
}

// SMTPConfig holds outgoing mail settings
type SMTPConfig struct {
	Host     string        `yaml:"host" json:"host" jsonschema:"default=smtp.gmail.com,description=SMTP host"`
	Port     int           `yaml:"port" json:"port" jsonschema:"default=465,description=SMTP port"`
	TLS      bool          `yaml:"tls" json:"tls" jsonschema:"default=true,description=Use SSL/TLS on connect"`
	StartTLS bool          `yaml:"starttls" json:"starttls" jsonschema:"default=false,description=Use STARTTLS"`
	Username string        `yaml:"username" json:"username" jsonschema:"description=SMTP user"`
	Password string        `yaml:"password" json:"password" jsonschema:"description=SMTP password or app password"`
	From     string        `yaml:"from" json:"from" jsonschema:"description=Sender address, defaults to username"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=SMTP timeout"`
}

var dailyAtRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Config{}
	// preset values where zero is a valid setting
	cfg.Schedule.Enabled = true
	cfg.SMTP.TLS = true
	cfg.LLM.Temperature = 0.3
	cfg.Relevance.Threshold = 0.78
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:research-listener.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	if cfg.Schedule.DailyAt == "" {
		cfg.Schedule.DailyAt = "08:00"
	}

	// feed
	if cfg.Feed.Endpoint == "" {
		cfg.Feed.Endpoint = "https://export.arxiv.org/api/query"
	}
	if cfg.Feed.MaxResults == 0 {
		cfg.Feed.MaxResults = 120
	}
	if cfg.Feed.WindowDays == 0 {
		cfg.Feed.WindowDays = 1
	}
	if cfg.Feed.Timeout == 0 {
		cfg.Feed.Timeout = 20 * time.Second
	}
	if cfg.Feed.Retries == 0 {
		cfg.Feed.Retries = 3
	}
	if cfg.Feed.UserAgent == "" {
		cfg.Feed.UserAgent = "research-listener/1.0"
	}

	// llm
	if cfg.LLM.ChatModel == "" {
		cfg.LLM.ChatModel = "gpt-4o-mini"
	}
	if cfg.LLM.EmbeddingModel == "" {
		cfg.LLM.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 160
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}

	// relevance
	if cfg.Relevance.TopK == 0 {
		cfg.Relevance.TopK = 15
	}
	if cfg.Relevance.AbstractLimit == 0 {
		cfg.Relevance.AbstractLimit = 4096
	}
	if cfg.Relevance.BatchSize == 0 {
		cfg.Relevance.BatchSize = 2048
	}

	// summary
	if cfg.Summary.Sentences == 0 {
		cfg.Summary.Sentences = 3
	}
	if cfg.Summary.MaxAuthors == 0 {
		cfg.Summary.MaxAuthors = 4
	}

	if cfg.Report.Dir == "" {
		cfg.Report.Dir = "./daily_reports"
	}

	// smtp
	if cfg.SMTP.Host == "" {
		cfg.SMTP.Host = "smtp.gmail.com"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 465
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}
	if cfg.SMTP.Timeout == 0 {
		cfg.SMTP.Timeout = 30 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if !dailyAtRe.MatchString(cfg.Schedule.DailyAt) {
		return fmt.Errorf("schedule.daily_at must be HH:MM, got %q", cfg.Schedule.DailyAt)
	}

	if cfg.Feed.MaxResults < 1 {
		return fmt.Errorf("feed.max_results must be at least 1")
	}
	if cfg.Feed.WindowDays < 1 {
		return fmt.Errorf("feed.window_days must be at least 1")
	}
	if cfg.Feed.Retries < 1 {
		return fmt.Errorf("feed.retries must be at least 1")
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	if cfg.Relevance.Threshold < 0 || cfg.Relevance.Threshold > 1 {
		return fmt.Errorf("relevance.threshold must be between 0 and 1")
	}
	if cfg.Relevance.TopK < 1 {
		return fmt.Errorf("relevance.top_k must be at least 1")
	}
	if cfg.Relevance.BatchSize < 1 {
		return fmt.Errorf("relevance.batch_size must be at least 1")
	}

	if cfg.Summary.Sentences < 1 || cfg.Summary.Sentences > 3 {
		return fmt.Errorf("summary.sentences must be between 1 and 3")
	}
	if cfg.Summary.MaxAuthors < 1 {
		return fmt.Errorf("summary.max_authors must be at least 1")
	}

	if cfg.SMTP.TLS && cfg.SMTP.StartTLS {
		return fmt.Errorf("smtp.tls and smtp.starttls are mutually exclusive")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// SemanticEnabled reports whether the embedding and generation backend is configured
func (c *Config) SemanticEnabled() bool {
	return c.LLM.APIKey != ""
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// Secrets returns values that must never appear in logs
func (c *Config) Secrets() []string {
	var res []string
	for _, s := range []string{c.LLM.APIKey, c.SMTP.Password} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

// GetBaseURL returns the public URL of the server
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}
