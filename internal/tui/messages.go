package tui

// Mode determines which screen to render
type Mode int

const (
	ModeBrowse Mode = iota
	ModeEdit
	ModeName
	ModeHelp
)

// Export actions

// ExportAction selects where a finished render goes.
type ExportAction int

const (
	ExportSave ExportAction = iota
	ExportCopy
)

// RenderCompleteMsg indicates a render was exported
type RenderCompleteMsg struct {
	Path   string
	Notice string
}

// RenderErrorMsg indicates a render or its export failed
type RenderErrorMsg struct {
	Err error
}

// RenderCancelledMsg indicates the render was abandoned
type RenderCancelledMsg struct{}

// noticeExpiredMsg clears the notice it was scheduled for.
type noticeExpiredMsg struct {
	seq int
}
