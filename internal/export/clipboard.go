package export

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

// Clipboard accepts PNG bytes.
type Clipboard interface {
	CopyPNG(ctx context.Context, data []byte) error
}

// CommandClipboard pipes the image into the first available clipboard tool.
type CommandClipboard struct {
	Commands [][]string
	lookPath func(string) (string, error)
}

// NewCommandClipboard tries wl-copy, then xclip.
func NewCommandClipboard() *CommandClipboard {
	return &CommandClipboard{
		Commands: [][]string{
			{"wl-copy", "--type", "image/png"},
			{"xclip", "-selection", "clipboard", "-t", "image/png", "-i"},
		},
		lookPath: exec.LookPath,
	}
}

func (c *CommandClipboard) CopyPNG(ctx context.Context, data []byte) error {
	lookPath := c.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, argv := range c.Commands {
		if len(argv) == 0 {
			continue
		}
		bin, err := lookPath(argv[0])
		if err != nil {
			continue
		}

		var stderr bytes.Buffer
		cmd := exec.CommandContext(ctx, bin, argv[1:]...)
		cmd.Stdin = bytes.NewReader(data)
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			if out := strings.TrimSpace(stderr.String()); out != "" {
				err = fmt.Errorf("%w: %s", err, out)
			}
			return sverrors.NewClipboardError(fmt.Errorf("%s: %w", argv[0], err))
		}
		return nil
	}

	return sverrors.NewClipboardError(nil)
}
