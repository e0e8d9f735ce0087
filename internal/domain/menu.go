package domain

// MenuItem is one flat navigation row as stored, referencing an optional parent.
type MenuItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	ParentID *int64 `json:"parentId"`
}

// MenuNode is a MenuItem linked into the navigation forest. Children keep
// source order. Read-only to consumers; rebuilt in full on every fetch.
type MenuNode struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	URL      string      `json:"url"`
	ParentID *int64      `json:"parentId"`
	Children []*MenuNode `json:"children"`
}
