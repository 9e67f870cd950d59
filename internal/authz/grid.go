package authz

import (
	"sort"
	"strings"
)

// ActionsColumn is the reserved column id for row action buttons.
const ActionsColumn = "actions"

// ColumnRule gates one grid column. The column is visible when any of the
// listed permissions is granted. Module and Label feed the denial notice.
type ColumnRule struct {
	AnyOf  []string
	Module string
	Label  string
}

// GridAccess is the evaluated column composition for one grid.
type GridAccess struct {
	Allowed        []string `json:"allowed"`
	Denied         []string `json:"denied"`
	ActionsVisible bool     `json:"actions_visible"`
	Notice         string   `json:"notice,omitempty"`
}

// GridColumns buckets the declared columns into allowed and denied for the
// snapshot. Columns without a rule are allowed: the permissive default exists
// for unclassified, non-sensitive columns only, and every sensitive column
// must carry an explicit rule. When any column is denied the actions column
// is withheld entirely, even if individually permitted, so the grid never
// implies partial capability. Output ordering is sorted, so the result is
// independent of rule map iteration order.
func (e *Evaluator) GridColumns(s Snapshot, columns []string, rules map[string]ColumnRule) GridAccess {
	allowed := make([]string, 0, len(columns))
	denied := make([]string, 0)
	deniedLabels := make([]string, 0)

	for _, col := range columns {
		rule, gated := rules[col]
		if !gated || e.HasAny(s, rule.AnyOf...) {
			allowed = append(allowed, col)
			continue
		}
		denied = append(denied, col)
		label := rule.Label
		if label == "" {
			label = col
		}
		deniedLabels = append(deniedLabels, label)
	}

	access := GridAccess{}
	if len(denied) > 0 {
		filtered := allowed[:0]
		for _, col := range allowed {
			if col != ActionsColumn {
				filtered = append(filtered, col)
			}
		}
		allowed = filtered
	} else {
		for _, col := range allowed {
			if col == ActionsColumn {
				access.ActionsVisible = true
			}
		}
	}

	sort.Strings(allowed)
	sort.Strings(denied)
	sort.Strings(deniedLabels)

	access.Allowed = allowed
	access.Denied = denied
	if len(deniedLabels) > 0 {
		access.Notice = "You don't have permission to view: " + strings.Join(deniedLabels, ", ") + "."
	}
	return access
}
