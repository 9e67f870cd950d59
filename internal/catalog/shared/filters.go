package shared

import (
	"net/url"
	"strconv"
	"strings"
)

// ListFilters represents the standard list page parameters.
type ListFilters struct {
	Page    int
	Limit   int
	Search  string
	SortBy  string
	SortDir string

	// Entity specific filters
	TypeID      *int64
	CategoryIDs []int64
	SkillIDs    []int64
	Languages   []string
	Published   *bool
}

// Offset returns the row offset for the current page.
func (f ListFilters) Offset() int {
	offset := (f.Page - 1) * f.Limit
	if offset < 0 {
		return 0
	}
	return offset
}

// ParseListFilters extracts pagination, sort and common filters from query
// parameters, clamping out-of-range values to defaults.
func ParseListFilters(values url.Values) ListFilters {
	page, _ := strconv.Atoi(values.Get("page"))
	if page < 1 {
		page = DefaultPage
	}
	limit, _ := strconv.Atoi(values.Get("limit"))
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	dir := strings.ToLower(values.Get("dir"))
	if dir != SortDesc {
		dir = SortAsc
	}

	filters := ListFilters{
		Page:    page,
		Limit:   limit,
		Search:  strings.TrimSpace(values.Get("search")),
		SortBy:  strings.TrimSpace(values.Get("sort")),
		SortDir: dir,
	}

	if raw := strings.TrimSpace(values.Get("type_id")); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			filters.TypeID = &id
		}
	}
	filters.CategoryIDs = parseIDList(values["category_id"])
	filters.SkillIDs = parseIDList(values["skill_id"])
	for _, lang := range values["language"] {
		if lang = strings.TrimSpace(lang); lang != "" {
			filters.Languages = append(filters.Languages, lang)
		}
	}
	if raw := strings.TrimSpace(values.Get("published")); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filters.Published = &v
		}
	}
	return filters
}

func parseIDList(raw []string) []int64 {
	var ids []int64
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if id, err := strconv.ParseInt(part, 10, 64); err == nil && id > 0 {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
