package config

// Config is the root configuration structure
type Config struct {
	Version  int           `yaml:"version"`
	Locale   string        `yaml:"locale" env:"LOCALE"`
	Mode     Mode          `yaml:"mode" env:"MODE"`
	Output   OutputConfig  `yaml:"output" envPrefix:"OUTPUT_"`
	History  HistoryConfig `yaml:"history" envPrefix:"HISTORY_"`
	Publish  PublishConfig `yaml:"publish" envPrefix:"PUBLISH_"`
	Fixtures string        `yaml:"fixtures,omitempty" env:"FIXTURES"` // self-test fixture file; empty = built-in set
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	Format    string `yaml:"format" env:"FORMAT"`       // text, json, yaml, msgpack
	Precision int    `yaml:"precision" env:"PRECISION"` // decimals in text output
}

// HistoryConfig controls the SQLite solve history
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Path    string `yaml:"path" env:"PATH"`
}

// PublishConfig controls publishing results to a Redis channel
type PublishConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password,omitempty" env:"PASSWORD"`
	DB       int    `yaml:"db,omitempty" env:"DB"`
	Channel  string `yaml:"channel" env:"CHANNEL"`
}

const (
	DefaultLocale         = "en-US"
	DefaultPrecision      = 2
	MaxPrecision          = 15
	DefaultHistoryPath    = "./quadsolve.db"
	DefaultPublishAddr    = "localhost:6379"
	DefaultPublishChannel = "quadsolve-solutions"
)
