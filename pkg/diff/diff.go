// Package diff compares snapshots line by line through their YAML form.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/sportvisual/internal/document"
)

const (
	maxDiffLines    = 2000
	truncateMessage = "... (diff truncated) ..."
)

// Lines lists the lines that differ between before and after. Each run of
// changes opens with an @@ -N +M @@ header giving its 1-based line numbers.
// Identical input yields "".
func Lines(before, after []byte, beforeLabel, afterLabel string) string {
	if bytes.Equal(before, after) {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, index := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), index)

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n+++ %s\n", beforeLabel, afterLabel)

	beforeLine, afterLine := 1, 1
	inHunk := false
	written := 2
	for _, d := range diffs {
		lines := splitLines(d.Text)

		if d.Type == diffmatchpatch.DiffEqual {
			beforeLine += len(lines)
			afterLine += len(lines)
			inHunk = false
			continue
		}

		if !inHunk {
			fmt.Fprintf(&buf, "@@ -%d +%d @@\n", beforeLine, afterLine)
			inHunk = true
			written++
		}

		prefix := "+"
		if d.Type == diffmatchpatch.DiffDelete {
			prefix = "-"
			beforeLine += len(lines)
		} else {
			afterLine += len(lines)
		}

		for _, line := range lines {
			if written >= maxDiffLines {
				buf.WriteString(truncateMessage + "\n")
				return buf.String()
			}
			buf.WriteString(prefix + line + "\n")
			written++
		}
	}

	return buf.String()
}

// Snapshots compares two snapshots rendered as YAML.
func Snapshots(before, after document.Snapshot, beforeLabel, afterLabel string) (string, error) {
	a, err := yaml.Marshal(before)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", beforeLabel, err)
	}
	b, err := yaml.Marshal(after)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", afterLabel, err)
	}
	return Lines(a, b, beforeLabel, afterLabel), nil
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
