package categories

// Category is a catalog grouping under one category type.
type Category struct {
	ID       int64  `json:"id"`
	TypeID   int64  `json:"type_id"`
	TypeName string `json:"type_name,omitempty"`
	Code     string `json:"code"`
	Name     string `json:"name"`
}
