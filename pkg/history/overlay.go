package history

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Field is an editable attribute of a deployed version.
type Field string

const (
	FieldVersionName        Field = "newVersionName"
	FieldVersionDescription Field = "newVersionDescription"
)

type recordKey struct {
	AppKey          string `json:"appKey"`
	EnvironmentName string `json:"environmentName"`
	VersionName     string `json:"versionName"`
}

// MakeKey returns the identity of a record: the JSON encoding of its app key,
// environment and version name. Distinct triples never share a key.
func MakeKey(r api.Deployment) string {
	b, err := json.Marshal(recordKey{
		AppKey:          r.AppKey,
		EnvironmentName: r.EnvironmentName,
		VersionName:     r.VersionName,
	})
	if err != nil {
		// only strings are encoded
		panic(err)
	}
	return string(b)
}

// Edit holds the pending values of a version.
type Edit struct {
	NewVersionName        string
	NewVersionDescription string
}

// OverlayEntry is an edited record with its pending values.
type OverlayEntry struct {
	Key    string
	Record api.Deployment
	Edit   Edit
}

// Update is the request that applies the entry. The name is sent trimmed and
// an emptied name keeps the current one.
func (e OverlayEntry) Update() api.VersionUpdate {
	name := strings.TrimSpace(e.Edit.NewVersionName)
	if name == "" {
		name = e.Record.VersionName
	}
	return api.VersionUpdate{Name: name, Description: e.Edit.NewVersionDescription}
}

// Changed reports whether the entry differs from its record.
func (e OverlayEntry) Changed() bool {
	u := e.Update()
	return u.Name != e.Record.VersionName || u.Description != e.Record.VersionDescription
}

// EditOverlay maps record keys to pending version edits.
type EditOverlay struct {
	entries map[string]OverlayEntry
}

func NewEditOverlay() *EditOverlay {
	return &EditOverlay{entries: make(map[string]OverlayEntry)}
}

// Set records a pending value. The first edit of a record seeds both fields
// from the record itself. Names are trimmed.
func (o *EditOverlay) Set(r api.Deployment, field Field, value string) error {
	key := MakeKey(r)
	entry, ok := o.entries[key]
	if !ok {
		entry = OverlayEntry{
			Key:    key,
			Record: r,
			Edit: Edit{
				NewVersionName:        r.VersionName,
				NewVersionDescription: r.VersionDescription,
			},
		}
	}

	switch field {
	case FieldVersionName:
		entry.Edit.NewVersionName = value
	case FieldVersionDescription:
		entry.Edit.NewVersionDescription = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	o.entries[key] = entry
	return nil
}

// Get returns the pending edit of a record.
func (o *EditOverlay) Get(r api.Deployment) (Edit, bool) {
	entry, ok := o.entries[MakeKey(r)]
	return entry.Edit, ok
}

// Resolve returns the name and description to display for a record: the
// pending values when present, otherwise the record's own.
func (o *EditOverlay) Resolve(r api.Deployment) (name, description string) {
	if entry, ok := o.entries[MakeKey(r)]; ok {
		return entry.Edit.NewVersionName, entry.Edit.NewVersionDescription
	}
	return r.VersionName, r.VersionDescription
}

// Remove drops the entry stored under key.
func (o *EditOverlay) Remove(key string) {
	delete(o.entries, key)
}

// Clear drops every entry.
func (o *EditOverlay) Clear() {
	o.entries = make(map[string]OverlayEntry)
}

func (o *EditOverlay) Len() int {
	return len(o.entries)
}

// Entries returns the entries ordered by key.
func (o *EditOverlay) Entries() []OverlayEntry {
	out := make([]OverlayEntry, 0, len(o.entries))
	for _, e := range o.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
