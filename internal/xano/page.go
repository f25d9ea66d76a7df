package xano

// Page is the envelope Xano wraps around paginated lists.
type Page[T any] struct {
	Items      []T `json:"items"`
	CurPage    int `json:"curPage"`
	PerPage    int `json:"perPage"`
	ItemsTotal int `json:"itemsTotal"`
	PageTotal  int `json:"pageTotal"`
}
