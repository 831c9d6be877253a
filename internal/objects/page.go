package objects

// PageRequest is the paging input accepted by the list endpoints.
// SortOrder is asc or desc; anything else means desc.
type PageRequest struct {
	Page      int    `json:"page"`
	Size      int    `json:"size"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
	Keyword   string `json:"keyword"`
}
