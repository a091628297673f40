package theme

import (
	"encoding/json"
	"time"
)

// Theme status lifecycle.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Statuses lists the accepted status values.
var Statuses = []string{StatusDraft, StatusPublished, StatusArchived}

// Theme is a storefront look-and-feel owned by one tenant.
//
// The Colors/Typography/Layout blobs are opaque JSON edited by the admin UI;
// the structured per-key settings live in the settings domain keyed by theme.
type Theme struct {
	ID          int64  `json:"id"`
	TenantID    int64  `json:"tenant_id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
	Status      string `json:"status"`
	IsDefault   bool   `json:"is_default"`

	Colors     json.RawMessage `json:"colors,omitempty"`
	Typography json.RawMessage `json:"typography,omitempty"`
	Layout     json.RawMessage `json:"layout,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated theme search.
type Filter struct {
	Search  string // Matches slug and name
	Status  string // Restricts to one lifecycle status
	Sort    string // name, created, updated; default keeps the tenant default first
	SortDir string // asc (default) or desc
}

// Global field names for validation
const (
	FieldSlug    = "slug"
	FieldName    = "name"
	FieldVersion = "version"
	FieldStatus  = "status"
)
