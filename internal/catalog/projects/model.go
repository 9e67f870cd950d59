package projects

import "github.com/foliohq/folio/internal/catalog/shared"

// Project is a multilingual catalog project with category, skill and media
// relations.
type Project struct {
	ID            int64                `json:"id"`
	Code          string               `json:"code"`
	Published     bool                 `json:"published"`
	Translations  []shared.Translation `json:"translations"`
	CategoryIDs   []int64              `json:"category_ids"`
	SkillIDs      []int64              `json:"skill_ids"`
	ImageIDs      []int64              `json:"image_ids"`
	AttachmentIDs []int64              `json:"attachment_ids"`
}

// BulkDeleteResult reports the outcome of a partial-failure-tolerant bulk
// delete: every id that was removed plus the count that were not.
type BulkDeleteResult struct {
	DeletedIDs []int64 `json:"deleted_ids"`
	Failed     int     `json:"failed"`
}
