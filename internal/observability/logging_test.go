package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithBuildID(t *testing.T) {
	ctx := WithBuildID(context.Background(), "build-123")
	assert.Equal(t, "build-123", GetContext(ctx).BuildID)
}

func TestWithStageAndDayCompose(t *testing.T) {
	ctx := WithStage(context.Background(), "scan")
	ctx = WithDay(ctx, 42)

	lc := GetContext(ctx)
	assert.Equal(t, "scan", lc.Stage)
	assert.Equal(t, 42, lc.Day)
}

func TestInfoContextIncludesAttrs(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	ctx := WithStage(WithBuildID(context.Background(), "b1"), "render")
	ctx = WithDay(ctx, 3)
	InfoContext(ctx, "rendered page", slog.String("file", "day-3.html"))

	out := buf.String()
	assert.Contains(t, out, "build.id=b1")
	assert.Contains(t, out, "stage=render")
	assert.Contains(t, out, "day=3")
	assert.Contains(t, out, "file=day-3.html")
}

func TestDayOmittedWhenUnset(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	WarnContext(WithStage(context.Background(), "parse"), "skipped heading")
	assert.NotContains(t, buf.String(), "day=")
}
