package domain

import (
	"sort"
	"time"
)

// MaxFeatured is the number of projects that may be featured at the same time.
const MaxFeatured = 3

// Project is a showcased piece of work.
// It is storage-agnostic and used across repository, service and HTTP layers.
type Project struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	URL       string `json:"url"`
	ImageURL  string `json:"imageUrl,omitempty"`
	CreatedAt string `json:"createdAt"`
	Featured  bool   `json:"featured"`
}

// ProjectInput is the caller-supplied part of a Project.
// A nil Featured means "leave as is" on update and false on create.
type ProjectInput struct {
	Title    string `json:"title" validate:"required,min=2"`
	Summary  string `json:"summary" validate:"required,min=10"`
	URL      string `json:"url" validate:"required,url"`
	ImageURL string `json:"imageUrl"`
	Featured *bool  `json:"featured"`
}

// NewTimestamp formats t the way CreatedAt is stored.
func NewTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// CreatedUnixMilli parses CreatedAt; a missing or unparseable value counts as epoch 0.
func (p Project) CreatedUnixMilli() int64 {
	if p.CreatedAt == "" {
		return 0
	}
	t, err := time.Parse(time.RFC3339Nano, p.CreatedAt)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}

// SortNewestFirst orders projects by CreatedAt descending.
func SortNewestFirst(items []Project) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedUnixMilli() > items[j].CreatedUnixMilli()
	})
}
