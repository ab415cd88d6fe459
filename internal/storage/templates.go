package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

// MaxTemplates is how many saved templates are kept. Older ones are evicted.
const MaxTemplates = 10

// dateLayout matches the day-first local format the list has always displayed.
const dateLayout = "02/01/2006 15:04:05"

// SavedTemplate is a named snapshot. Its JSON form is the snapshot's with
// id, name and date added alongside.
type SavedTemplate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
	document.Snapshot
}

// Templates is the newest-first saved-template list stored under KeyTemplates.
type Templates struct {
	store Store
	now   func() time.Time
}

// NewTemplates creates a list backed by store.
func NewTemplates(store Store) *Templates {
	return &Templates{store: store, now: time.Now}
}

// List returns the saved templates, newest first. A corrupt list reads as empty.
func (t *Templates) List() ([]SavedTemplate, error) {
	data, ok, err := t.store.Load(KeyTemplates)
	if err != nil || !ok {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil
	}

	list := make([]SavedTemplate, 0, len(raw))
	for _, entry := range raw {
		saved, err := decodeTemplate(entry)
		if err != nil {
			continue
		}
		list = append(list, saved)
	}
	return list, nil
}

// Add saves snap under name at the front of the list and evicts the oldest
// entry past MaxTemplates.
func (t *Templates) Add(name string, snap document.Snapshot) (SavedTemplate, error) {
	list, err := t.List()
	if err != nil {
		return SavedTemplate{}, err
	}

	saved := SavedTemplate{
		ID:       uuid.New().String(),
		Name:     name,
		Date:     t.now().Format(dateLayout),
		Snapshot: snap.Clone(),
	}
	list = append([]SavedTemplate{saved}, list...)
	if len(list) > MaxTemplates {
		list = list[:MaxTemplates]
	}

	return saved, t.write(list)
}

// Get returns the template at index.
func (t *Templates) Get(index int) (SavedTemplate, error) {
	list, err := t.List()
	if err != nil {
		return SavedTemplate{}, err
	}
	if index < 0 || index >= len(list) {
		return SavedTemplate{}, fmt.Errorf("no saved template at index %d", index)
	}
	return list[index], nil
}

// Delete removes the template at index.
func (t *Templates) Delete(index int) error {
	list, err := t.List()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(list) {
		return fmt.Errorf("no saved template at index %d", index)
	}
	list = append(list[:index], list[index+1:]...)
	return t.write(list)
}

func (t *Templates) write(list []SavedTemplate) error {
	if list == nil {
		list = []SavedTemplate{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return sverrors.NewStorageError("save", KeyTemplates, err)
	}
	return t.store.Save(KeyTemplates, data)
}

// decodeTemplate reads one entry over the default document so entries saved
// by older versions still carry every field.
func decodeTemplate(data []byte) (SavedTemplate, error) {
	var meta struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Date string `json:"date"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return SavedTemplate{}, err
	}

	snap, err := document.Unmarshal(data)
	if err != nil {
		return SavedTemplate{}, err
	}
	return SavedTemplate{ID: meta.ID, Name: meta.Name, Date: meta.Date, Snapshot: snap}, nil
}
