package authz

import "fmt"

// FilterRule gates one filter field. The field stays usable when any of the
// listed permissions is granted; Module names the area in the denial message.
type FilterRule struct {
	AnyOf  []string
	Module string
}

// FilterVerdict is the evaluated state of one filter field. Denied filters
// remain listed but disabled: users should see that a filter exists and is
// restricted rather than silently lose it.
type FilterVerdict struct {
	Key     string `json:"key"`
	Denied  bool   `json:"denied"`
	Message string `json:"message,omitempty"`
}

// FilterAccess is the evaluated filter composition for one list page.
type FilterAccess struct {
	Filters       []FilterVerdict `json:"filters"`
	SearchEnabled bool            `json:"search_enabled"`
}

// Filters evaluates the active filter keys. Search is disabled only when
// every active filter is denied; fields without a rule are never denied.
func (e *Evaluator) Filters(s Snapshot, keys []string, rules map[string]FilterRule) FilterAccess {
	verdicts := make([]FilterVerdict, 0, len(keys))
	deniedCount := 0
	for _, key := range keys {
		verdict := FilterVerdict{Key: key}
		if rule, ok := rules[key]; ok && !e.HasAny(s, rule.AnyOf...) {
			verdict.Denied = true
			verdict.Message = fmt.Sprintf("You don't have permission to filter by %s (%s).",
				key, e.registry.ModuleLabel(rule.Module))
			deniedCount++
		}
		verdicts = append(verdicts, verdict)
	}
	return FilterAccess{
		Filters:       verdicts,
		SearchEnabled: len(keys) == 0 || deniedCount < len(keys),
	}
}
