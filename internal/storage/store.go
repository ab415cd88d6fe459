// Package storage persists the document, the saved-template list and the UI
// theme as opaque values under fixed keys.
package storage

import (
	"github.com/alexisbeaulieu97/sportvisual/internal/logger"
)

// Keys under which the editor persists its state.
const (
	KeyData      = "sportvisual_data"
	KeyTemplates = "sportvisual_templates"
	KeyUITheme   = "sportvisual_ui_theme"
)

// Store is a last-write-wins key/value store.
type Store interface {
	// Load returns the stored value and whether the key exists.
	Load(key string) ([]byte, bool, error)
	Save(key string, data []byte) error
	Delete(key string) error
	Close() error
}

// Open opens the bbolt file at path. An empty path, or a file that cannot be
// opened, yields a MemoryStore; the failure is logged and durable reports false.
func Open(path string, log *logger.Logger) (store Store, durable bool) {
	if path == "" {
		log.Debug("no storage path configured, using in-memory storage")
		return NewMemoryStore(), false
	}

	bolt, err := OpenBolt(path)
	if err != nil {
		log.WithField("path", path).Warn(err, "storage unavailable, falling back to in-memory storage")
		return NewMemoryStore(), false
	}
	return bolt, true
}
