package history

import (
	"github.com/google/uuid"
)

// CheckState is the state of a group checkbox.
type CheckState int

const (
	Unchecked CheckState = iota
	Indeterminate
	Checked
)

func (s CheckState) String() string {
	switch s {
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unchecked"
	}
}

// TriState derives a group state from its children and the set of checked
// labels: Checked when every child is in the set, Indeterminate when only some
// are, Unchecked otherwise. A group without children is Unchecked.
func TriState(children []string, checked map[string]bool) CheckState {
	if len(children) == 0 {
		return Unchecked
	}
	n := 0
	for _, c := range children {
		if checked[c] {
			n++
		}
	}
	switch {
	case n == len(children):
		return Checked
	case n > 0:
		return Indeterminate
	default:
		return Unchecked
	}
}

// Selection is one selectable entry of a filter list. Label is the natural
// key, Key a stable opaque identity that survives list rebuilds.
type Selection struct {
	Label   string
	Checked bool
	Key     string
}

// SelectionList is an ordered list of selections with unique labels.
type SelectionList struct {
	items []Selection
	index map[string]int
}

// NewSelectionList creates an unchecked entry per label, in the given order.
// Duplicate labels collapse into the first occurrence.
func NewSelectionList(labels []string) *SelectionList {
	l := &SelectionList{index: make(map[string]int, len(labels))}
	for _, label := range labels {
		if _, dup := l.index[label]; dup {
			continue
		}
		l.index[label] = len(l.items)
		l.items = append(l.items, Selection{Label: label, Key: uuid.NewString()})
	}
	return l
}

// Rebuild replaces the labels while keeping the checked flag and key of every
// label that is still present.
func (l *SelectionList) Rebuild(labels []string) {
	old := l.items
	oldIndex := l.index
	l.items = nil
	l.index = make(map[string]int, len(labels))
	for _, label := range labels {
		if _, dup := l.index[label]; dup {
			continue
		}
		sel := Selection{Label: label, Key: uuid.NewString()}
		if i, ok := oldIndex[label]; ok {
			sel = old[i]
		}
		l.index[label] = len(l.items)
		l.items = append(l.items, sel)
	}
}

// Items returns a copy of the entries in list order.
func (l *SelectionList) Items() []Selection {
	out := make([]Selection, len(l.items))
	copy(out, l.items)
	return out
}

func (l *SelectionList) Len() int {
	return len(l.items)
}

// Has reports whether label is part of the list.
func (l *SelectionList) Has(label string) bool {
	_, ok := l.index[label]
	return ok
}

// IsChecked reports whether label is present and checked.
func (l *SelectionList) IsChecked(label string) bool {
	i, ok := l.index[label]
	return ok && l.items[i].Checked
}

// Set changes one entry. It returns false when the label is unknown.
func (l *SelectionList) Set(label string, checked bool) bool {
	i, ok := l.index[label]
	if !ok {
		return false
	}
	l.items[i].Checked = checked
	return true
}

// Toggle flips one entry. It returns false when the label is unknown.
func (l *SelectionList) Toggle(label string) bool {
	i, ok := l.index[label]
	if !ok {
		return false
	}
	l.items[i].Checked = !l.items[i].Checked
	return true
}

// SetAll sets every listed label that exists; unknown labels are ignored.
func (l *SelectionList) SetAll(labels []string, checked bool) {
	for _, label := range labels {
		l.Set(label, checked)
	}
}

// ToggleGroup checks every label of the group unless all of them already are,
// in which case it unchecks them. It returns the resulting group state.
func (l *SelectionList) ToggleGroup(labels []string) CheckState {
	target := l.State(labels) != Checked
	l.SetAll(labels, target)
	return l.State(labels)
}

// State is the tri-state of the given group of labels.
func (l *SelectionList) State(labels []string) CheckState {
	return TriState(labels, l.CheckedSet())
}

// Checked returns the checked labels in list order.
func (l *SelectionList) Checked() []string {
	var out []string
	for _, s := range l.items {
		if s.Checked {
			out = append(out, s.Label)
		}
	}
	return out
}

// CheckedSet returns the checked labels as a set.
func (l *SelectionList) CheckedSet() map[string]bool {
	set := make(map[string]bool)
	for _, s := range l.items {
		if s.Checked {
			set[s.Label] = true
		}
	}
	return set
}

// Any reports whether at least one entry is checked.
func (l *SelectionList) Any() bool {
	for _, s := range l.items {
		if s.Checked {
			return true
		}
	}
	return false
}

// Clear unchecks every entry.
func (l *SelectionList) Clear() {
	for i := range l.items {
		l.items[i].Checked = false
	}
}
