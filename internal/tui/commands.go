package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	"github.com/alexisbeaulieu97/sportvisual/internal/export"
)

// renderCmd renders snap and hands the image to the exporter asynchronously
func renderCmd(ctx context.Context, r Renderer, e Exporter, snap document.Snapshot, action ExportAction) tea.Cmd {
	return func() tea.Msg {
		if r == nil || e == nil {
			return RenderErrorMsg{Err: fmt.Errorf("export is not configured")}
		}

		raster, err := r.Render(ctx, snap)
		if err != nil {
			if ctx.Err() != nil {
				return RenderCancelledMsg{}
			}
			return RenderErrorMsg{Err: err}
		}
		defer func() { _ = raster.Close() }()
		img := raster.Image()

		if action == ExportCopy {
			res, err := e.Copy(ctx, img, snap.Template, snap.Format)
			if err != nil {
				return RenderErrorMsg{Err: err}
			}
			return RenderCompleteMsg{Path: res.Path, Notice: res.Notice}
		}

		path, err := e.Save(img, snap.Template, snap.Format)
		if err != nil {
			return RenderErrorMsg{Err: err}
		}
		return RenderCompleteMsg{Path: path, Notice: export.NoticeDownloaded}
	}
}

// expireNoticeCmd clears notice seq after it has been shown long enough
func expireNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(noticeDuration, func(_ time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
