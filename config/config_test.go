package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jatokenstream "github.com/masamichhhhi/go-ja-tokenstream"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jatokenize.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10*1024*1024, cfg.Tokenizer.MaxSize)
	assert.Equal(t, "ipa-neologd", cfg.Tokenizer.Dictionary)
	assert.Equal(t, "search", cfg.Tokenizer.Mode)
	assert.Nil(t, cfg.Filter.StopPatterns)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/jatokenize.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeConfig(t, `
tokenizer:
  max_size: 4096
  dictionary: ipa
filter:
  stop_patterns:
    - "助詞,.*"
    - "記号,.*"
  stop_words: ["これ"]
  romaji: true
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4096, cfg.Tokenizer.MaxSize)
	assert.Equal(t, "ipa", cfg.Tokenizer.Dictionary)
	assert.Equal(t, "search", cfg.Tokenizer.Mode, "unset keys keep defaults")
	assert.Equal(t, []string{"助詞,.*", "記号,.*"}, cfg.Filter.StopPatterns)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())

	opts := cfg.AnalyzerOptions(nil)
	assert.Equal(t, 4096, opts.MaxSize)
	assert.Equal(t, cfg.Filter.StopPatterns, opts.StopPatterns)
	assert.Equal(t, []string{"これ"}, opts.StopWords)
	assert.True(t, opts.Romaji)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "zero max size", content: "tokenizer:\n  max_size: 0\n"},
		{name: "negative max size", content: "tokenizer:\n  max_size: -1\n"},
		{name: "unknown dictionary", content: "tokenizer:\n  dictionary: unidic\n"},
		{name: "unknown mode", content: "tokenizer:\n  mode: fast\n"},
		{name: "unknown level", content: "logging:\n  level: loud\n"},
		{name: "broken yaml", content: "tokenizer: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_InvalidPattern(t *testing.T) {
	_, err := Load(writeConfig(t, "filter:\n  stop_patterns: [\"ok\", \"(\"]\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, jatokenstream.ErrInvalidPattern))

	var perr *jatokenstream.PatternError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Index)
}

func TestAnalyzerOptions_NoPatterns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Filter.StopPatterns = []string{}
	assert.Nil(t, cfg.AnalyzerOptions(nil).StopPatterns, "empty pattern list builds no filter")
}
