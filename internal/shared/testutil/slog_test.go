package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedSlogHandler(t *testing.T) {
	logger, h := NewTestLogger()

	logger.With("component", "merge").Warn("skipping", slog.String("file", "A.xls"))
	logger.Info("done", slog.Int("files", 2))

	warn := AssertLogged(t, h, slog.LevelWarn, "skipping")
	assert.Equal(t, "merge", warn.Attrs["component"])
	assert.Equal(t, "A.xls", warn.Attrs["file"])

	assert.Len(t, h.Records(slog.LevelInfo), 1)
	assert.Empty(t, h.Records(slog.LevelError))
}
