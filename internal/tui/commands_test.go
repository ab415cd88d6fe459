package tui

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/sportvisual/internal/canvas"
	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	"github.com/alexisbeaulieu97/sportvisual/internal/export"
)

type stubRenderer struct {
	err error
}

func (s stubRenderer) Render(_ context.Context, snap document.Snapshot) (*canvas.Raster, error) {
	if s.err != nil {
		return nil, s.err
	}
	return canvas.NewRaster(4, 4, nil), nil
}

type recordingExporter struct {
	saved   []string
	copied  int
	copyErr error
}

func (e *recordingExporter) Save(img image.Image, variant document.Variant, format string) (string, error) {
	e.saved = append(e.saved, string(variant)+"/"+format)
	return "out/" + string(variant) + ".png", nil
}

func (e *recordingExporter) Copy(_ context.Context, _ image.Image, _ document.Variant, _ string) (export.Result, error) {
	e.copied++
	if e.copyErr != nil {
		return export.Result{}, e.copyErr
	}
	return export.Result{Copied: true, Notice: export.NoticeCopied}, nil
}

func TestRenderCmdSavesImage(t *testing.T) {
	t.Parallel()

	exp := &recordingExporter{}
	snap := document.New()

	msg := renderCmd(context.Background(), stubRenderer{}, exp, snap, ExportSave)()

	complete, ok := msg.(RenderCompleteMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "out/match.png", complete.Path)
	assert.Equal(t, export.NoticeDownloaded, complete.Notice)
	assert.Equal(t, []string{"match/square"}, exp.saved)
}

func TestRenderCmdCopiesImage(t *testing.T) {
	t.Parallel()

	exp := &recordingExporter{}

	msg := renderCmd(context.Background(), stubRenderer{}, exp, document.New(), ExportCopy)()

	complete, ok := msg.(RenderCompleteMsg)
	require.True(t, ok, "got %T", msg)
	assert.Empty(t, complete.Path)
	assert.Equal(t, export.NoticeCopied, complete.Notice)
	assert.Equal(t, 1, exp.copied)
	assert.Empty(t, exp.saved)
}

func TestRenderCmdReportsRenderFailure(t *testing.T) {
	t.Parallel()

	msg := renderCmd(context.Background(), stubRenderer{err: errors.New("bad format")}, &recordingExporter{}, document.New(), ExportSave)()

	failed, ok := msg.(RenderErrorMsg)
	require.True(t, ok, "got %T", msg)
	assert.EqualError(t, failed.Err, "bad format")
}

func TestRenderCmdReportsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg := renderCmd(ctx, stubRenderer{err: context.Canceled}, &recordingExporter{}, document.New(), ExportSave)()

	_, ok := msg.(RenderCancelledMsg)
	assert.True(t, ok, "got %T", msg)
}

func TestRenderCmdReportsCopyFailure(t *testing.T) {
	t.Parallel()

	exp := &recordingExporter{copyErr: errors.New("read-only export dir")}

	msg := renderCmd(context.Background(), stubRenderer{}, exp, document.New(), ExportCopy)()

	failed, ok := msg.(RenderErrorMsg)
	require.True(t, ok, "got %T", msg)
	assert.EqualError(t, failed.Err, "read-only export dir")
}

func TestRenderCmdWithoutExporter(t *testing.T) {
	t.Parallel()

	msg := renderCmd(context.Background(), stubRenderer{}, nil, document.New(), ExportSave)()

	_, ok := msg.(RenderErrorMsg)
	assert.True(t, ok, "got %T", msg)
}
