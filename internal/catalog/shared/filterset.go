package shared

import "strings"

// Filter field types understood by the console's filter panel.
const (
	FilterText        = "text"
	FilterMultiSelect = "multiselect"
)

// FilterOption is one selectable value of a multiselect filter field.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterField declares one available filter of a list page.
type FilterField struct {
	Key     string         `json:"key"`
	Label   string         `json:"label"`
	Type    string         `json:"type"`
	Options []FilterOption `json:"options,omitempty"`
}

// FilterSlot is one active filter row in the panel.
type FilterSlot struct {
	Key    string
	Value  string
	Values []string
}

// FilterSet models the filter panel state: a bounded set of active slots over
// the declared fields. The panel always shows at least one slot while any
// field exists, and emits a clean filter object with empty values pruned.
type FilterSet struct {
	fields []FilterField
	slots  []FilterSlot
}

// NewFilterSet builds a set over the declared fields with one default slot.
func NewFilterSet(fields []FilterField) *FilterSet {
	fs := &FilterSet{fields: append([]FilterField(nil), fields...)}
	fs.Reset()
	return fs
}

// Fields returns the declared filter fields in declaration order.
func (fs *FilterSet) Fields() []FilterField {
	return append([]FilterField(nil), fs.fields...)
}

// Slots returns the active slots in order.
func (fs *FilterSet) Slots() []FilterSlot {
	return append([]FilterSlot(nil), fs.slots...)
}

// ActiveKeys returns the keys of the active slots in order.
func (fs *FilterSet) ActiveKeys() []string {
	keys := make([]string, 0, len(fs.slots))
	for _, s := range fs.slots {
		keys = append(keys, s.Key)
	}
	return keys
}

// CanAdd reports whether an unused field remains for a new slot.
func (fs *FilterSet) CanAdd() bool {
	return fs.firstUnused() != ""
}

// Add activates a slot for the first declared field not already active.
// A no-op when every field is active.
func (fs *FilterSet) Add() bool {
	key := fs.firstUnused()
	if key == "" {
		return false
	}
	fs.slots = append(fs.slots, FilterSlot{Key: key})
	return true
}

// Remove drops the slot for key. Removing the last remaining slot restores
// exactly one default slot, never zero, as long as any field is declared.
func (fs *FilterSet) Remove(key string) {
	kept := fs.slots[:0]
	for _, s := range fs.slots {
		if s.Key != key {
			kept = append(kept, s)
		}
	}
	fs.slots = kept
	if len(fs.slots) == 0 {
		fs.Reset()
	}
}

// SetType switches a slot to a different field, clearing its prior value so
// a stale value never rides along under a mismatched type.
func (fs *FilterSet) SetType(fromKey, toKey string) bool {
	if fs.fieldByKey(toKey) == nil || fs.isActive(toKey) {
		return false
	}
	for i, s := range fs.slots {
		if s.Key == fromKey {
			fs.slots[i] = FilterSlot{Key: toKey}
			return true
		}
	}
	return false
}

// SetValue sets the text value of a slot.
func (fs *FilterSet) SetValue(key, value string) {
	for i, s := range fs.slots {
		if s.Key == key {
			fs.slots[i].Value = value
			fs.slots[i].Values = nil
			return
		}
	}
}

// SetValues sets the multiselect values of a slot.
func (fs *FilterSet) SetValues(key string, values []string) {
	for i, s := range fs.slots {
		if s.Key == key {
			fs.slots[i].Values = append([]string(nil), values...)
			fs.slots[i].Value = ""
			return
		}
	}
}

// Reset returns the panel to exactly one default slot using the first
// declared field, or none when no fields are declared.
func (fs *FilterSet) Reset() {
	fs.slots = fs.slots[:0]
	if len(fs.fields) > 0 {
		fs.slots = append(fs.slots, FilterSlot{Key: fs.fields[0].Key})
	}
}

// Clean builds the flat filter object handed to the list query: empty
// strings and empty lists are pruned so an untouched panel submits nothing.
func (fs *FilterSet) Clean() map[string]any {
	out := make(map[string]any)
	for _, s := range fs.slots {
		if v := strings.TrimSpace(s.Value); v != "" {
			out[s.Key] = v
			continue
		}
		values := make([]string, 0, len(s.Values))
		for _, v := range s.Values {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			out[s.Key] = values
		}
	}
	return out
}

func (fs *FilterSet) firstUnused() string {
	for _, f := range fs.fields {
		if !fs.isActive(f.Key) {
			return f.Key
		}
	}
	return ""
}

func (fs *FilterSet) isActive(key string) bool {
	for _, s := range fs.slots {
		if s.Key == key {
			return true
		}
	}
	return false
}

func (fs *FilterSet) fieldByKey(key string) *FilterField {
	for i := range fs.fields {
		if fs.fields[i].Key == key {
			return &fs.fields[i]
		}
	}
	return nil
}
