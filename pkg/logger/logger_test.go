package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestInitLogger(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Level:    "info",
		Filename: filepath.Join(dir, "app.log"),
		MaxSize:  1,
	}

	err := InitLogger(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, Log)

	Log.Info("credit operation completed",
		zap.Uint("user_id", 1),
		zap.Int64("charged", 13))
	Sync()

	data, err := os.ReadFile(cfg.Filename)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "credit operation completed"))
	assert.True(t, strings.Contains(string(data), `"user_id":1`))
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	cfg := &Config{Level: "shouty", Filename: filepath.Join(t.TempDir(), "app.log")}
	err := InitLogger(cfg)
	assert.Error(t, err)
}
