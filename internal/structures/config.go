package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type CatalogConfig struct {
	Source  string        `yaml:"source" validate:"required"`
	Timeout time.Duration `yaml:"timeout"`
}

type Persistence struct {
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
	Compress bool   `yaml:"compress"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	// TTL in seconds; entries are also keyed by document revision.
	TTL int `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type CorsConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Catalog     CatalogConfig `yaml:"catalog"`
	WebServer   Server        `yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
	Cors        CorsConfig    `yaml:"cors"`
}
