package sections

import "github.com/foliohq/folio/internal/catalog/shared"

// Section is an ordered, multilingual page section.
type Section struct {
	ID           int64                `json:"id"`
	Code         string               `json:"code"`
	SortOrder    int                  `json:"sort_order"`
	Translations []shared.Translation `json:"translations"`
}

// DisplayName returns the first non-empty translated name, used for logs
// and audit lines.
func (s Section) DisplayName() string {
	for _, t := range s.Translations {
		if t.Name != "" {
			return t.Name
		}
	}
	return s.Code
}
