package shared

import "github.com/foliohq/folio/internal/authz"

// ViewConfig is a page's static declaration: columns, gating rules, filter
// fields and sorting. Pages declare these once; the descriptor endpoint
// evaluates them against the caller's snapshot on every request.
type ViewConfig struct {
	Module      string
	Columns     []string
	ColumnRules map[string]authz.ColumnRule
	Filters     []FilterField
	FilterRules map[string]authz.FilterRule
	SortFields  []string
	DefaultSort string
}

// FilterFieldState is a declared filter field with its evaluated access.
// Denied fields stay in the list, disabled, with an explanatory message.
type FilterFieldState struct {
	FilterField
	Disabled bool   `json:"disabled"`
	Message  string `json:"message,omitempty"`
}

// ViewDescriptor is the permission-pruned composition of one index page.
type ViewDescriptor struct {
	Module        string             `json:"module"`
	Grid          authz.GridAccess   `json:"grid"`
	Filters       []FilterFieldState `json:"filters"`
	SearchEnabled bool               `json:"search_enabled"`
	Operations    map[string]bool    `json:"operations"`
	SortFields    []string           `json:"sort_fields"`
	DefaultSort   string             `json:"default_sort"`
}

// BuildView evaluates a page declaration for one snapshot.
func BuildView(ev *authz.Evaluator, snap authz.Snapshot, cfg ViewConfig) ViewDescriptor {
	grid := ev.GridColumns(snap, cfg.Columns, cfg.ColumnRules)

	keys := make([]string, 0, len(cfg.Filters))
	for _, f := range cfg.Filters {
		keys = append(keys, f.Key)
	}
	filterAccess := ev.Filters(snap, keys, cfg.FilterRules)

	states := make([]FilterFieldState, 0, len(cfg.Filters))
	for i, f := range cfg.Filters {
		verdict := filterAccess.Filters[i]
		states = append(states, FilterFieldState{
			FilterField: f,
			Disabled:    verdict.Denied,
			Message:     verdict.Message,
		})
	}

	ops := map[string]bool{
		authz.OpCreate: ev.CanPerform(snap, authz.OpCreate, cfg.Module),
		authz.OpEdit:   ev.CanPerform(snap, authz.OpEdit, cfg.Module),
		authz.OpDelete: ev.CanPerform(snap, authz.OpDelete, cfg.Module),
	}

	return ViewDescriptor{
		Module:        cfg.Module,
		Grid:          grid,
		Filters:       states,
		SearchEnabled: filterAccess.SearchEnabled,
		Operations:    ops,
		SortFields:    cfg.SortFields,
		DefaultSort:   cfg.DefaultSort,
	}
}
