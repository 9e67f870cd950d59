package portfolios

import "github.com/foliohq/folio/internal/catalog/shared"

// Portfolio is a curated, multilingual collection of projects.
type Portfolio struct {
	ID           int64                `json:"id"`
	Code         string               `json:"code"`
	Translations []shared.Translation `json:"translations"`
	ProjectIDs   []int64              `json:"project_ids"`
}
