package config

import "time"

// Config is the application configuration. Every field is optional.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Fonts   FontsConfig   `yaml:"fonts"`
	Render  RenderConfig  `yaml:"render"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig locates the bbolt database. An empty path keeps state in memory.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// FontsConfig lists directories searched for font files before system fonts.
type FontsConfig struct {
	Dirs []string `yaml:"dirs" validate:"dive,required"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Format        string        `yaml:"format" validate:"output_format"`
	DecodeTimeout time.Duration `yaml:"decode_timeout" validate:"min=0"`
	ExportDir     string        `yaml:"export_dir"`
}

// ServerConfig configures the HTTP render service.
type ServerConfig struct {
	Addr        string `yaml:"addr" validate:"required"`
	MetricsPath string `yaml:"metrics_path" validate:"required,startswith=/"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Human bool   `yaml:"human"`
}
