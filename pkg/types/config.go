package types

import (
	"errors"
	"time"
)

// Supported dataset sources.
const (
	SourceSample = "sample"
	SourceTVMaze = "tvmaze"
	SourceJSONL  = "jsonl"
	SourceSQLite = "sqlite"
)

// Defaults applied when a key is absent from config.yaml.
const (
	DefaultPageSize       = 10
	DefaultTVMazeEndpoint = "https://api.tvmaze.com/search/shows"
	DefaultTVMazeQuery    = "snow"
	DefaultTVMazeTimeout  = 10 * time.Second
	DefaultLogLevel       = "info"
)

// Config holds the grid and dataset source settings.
type Config struct {
	Source   string       `json:"source" yaml:"source" mapstructure:"source"`
	PageSize int          `json:"page_size" yaml:"page_size" mapstructure:"page_size"`
	TVMaze   TVMazeConfig `json:"tvmaze" yaml:"tvmaze" mapstructure:"tvmaze"`
	JSONL    JSONLConfig  `json:"jsonl" yaml:"jsonl" mapstructure:"jsonl"`
	SQLite   SQLiteConfig `json:"sqlite" yaml:"sqlite" mapstructure:"sqlite"`
	LogLevel string       `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogFile  string       `json:"log_file,omitempty" yaml:"log_file,omitempty" mapstructure:"log_file"`
}

// TVMazeConfig configures the show search source.
type TVMazeConfig struct {
	Endpoint string        `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`
	Query    string        `json:"query" yaml:"query" mapstructure:"query"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// JSONLConfig configures the JSONL file source.
type JSONLConfig struct {
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// SQLiteConfig configures the SQLite table source.
type SQLiteConfig struct {
	Path  string `json:"path" yaml:"path" mapstructure:"path"`
	Table string `json:"table" yaml:"table" mapstructure:"table"`
}

// Config validation errors.
var (
	ErrPageSizeInvalid = errors.New("page size must be positive")
	ErrLogLevelUnknown = errors.New("unknown log level")
)

var knownSources = map[string]bool{
	SourceSample: true,
	SourceTVMaze: true,
	SourceJSONL:  true,
	SourceSQLite: true,
}

var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	return Config{
		Source:   SourceSample,
		PageSize: DefaultPageSize,
		TVMaze: TVMazeConfig{
			Endpoint: DefaultTVMazeEndpoint,
			Query:    DefaultTVMazeQuery,
			Timeout:  DefaultTVMazeTimeout,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. Source-specific parameters (paths, table
// names) are checked when the source is opened.
func (c Config) Validate() error {
	if !knownSources[c.Source] {
		return ErrUnknownSource
	}
	if c.PageSize < 1 {
		return ErrPageSizeInvalid
	}
	if c.LogLevel != "" && !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	return nil
}
