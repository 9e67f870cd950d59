package categorytypes

// CategoryType classifies categories (e.g. "technology", "industry").
type CategoryType struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
