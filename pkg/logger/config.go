package logger

type Config struct {
	Level      string   `yaml:"level"`
	Colorful   bool     `yaml:"colorful"`
	Targets    []string `yaml:"targets"`
	Path       string   `yaml:"path"`
	MaxSizeMB  int      `yaml:"max_size_mb"`
	MaxBackups int      `yaml:"max_backups"`
	MaxAgeDays int      `yaml:"max_age_days"`
	Compress   bool     `yaml:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Colorful:   true,
		Targets:    []string{"console"},
		Path:       "paintrack.log",
		MaxSizeMB:  10,
		MaxBackups: 10,
		MaxAgeDays: 7,
		Compress:   true,
	}
}
