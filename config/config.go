package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	jatokenstream "github.com/masamichhhhi/go-ja-tokenstream"
	"github.com/masamichhhhi/go-ja-tokenstream/morphology"
)

type Config struct {
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Filter    FilterConfig    `yaml:"filter"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type TokenizerConfig struct {
	MaxSize    int    `yaml:"max_size"`   // 文字数
	Dictionary string `yaml:"dictionary"` // "ipa", "ipa-neologd"
	Mode       string `yaml:"mode"`       // "normal", "search", "extended"
}

type FilterConfig struct {
	StopPatterns []string `yaml:"stop_patterns"` // 素性に完全一致させる正規表現
	StopWords    []string `yaml:"stop_words"`
	Romaji       bool     `yaml:"romaji"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Tokenizer: TokenizerConfig{
			MaxSize:    jatokenstream.DefaultMaxSize,
			Dictionary: morphology.DictIPANeologd,
			Mode:       morphology.ModeSearch,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// デフォルト値の上にYAMLを読み込む
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // ファイルがなければデフォルト
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Tokenizerがそのまま適用してしまう値はここで弾く
func (c *Config) Validate() error {
	if c.Tokenizer.MaxSize <= 0 {
		return fmt.Errorf("tokenizer.max_size must be positive, got %d", c.Tokenizer.MaxSize)
	}
	switch c.Tokenizer.Dictionary {
	case morphology.DictIPA, morphology.DictIPANeologd:
	default:
		return fmt.Errorf("tokenizer.dictionary: unknown dictionary %q", c.Tokenizer.Dictionary)
	}
	if _, err := morphology.ParseMode(c.Tokenizer.Mode); err != nil {
		return fmt.Errorf("tokenizer.mode: %w", err)
	}
	if _, err := jatokenstream.CompileStopPatterns(c.Filter.StopPatterns); err != nil {
		return fmt.Errorf("filter.stop_patterns: %w", err)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

func (c *Config) AnalyzerOptions(logger *slog.Logger) jatokenstream.Options {
	opts := jatokenstream.DefaultOptions()
	opts.MaxSize = c.Tokenizer.MaxSize
	if len(c.Filter.StopPatterns) > 0 {
		opts.StopPatterns = c.Filter.StopPatterns
	}
	opts.StopWords = c.Filter.StopWords
	opts.Romaji = c.Filter.Romaji
	opts.Logger = logger
	return opts
}

// 不正な値ならinfo
func (c *Config) LogLevel() slog.Level {
	level, err := parseLevel(c.Logging.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown level %q", s)
}
