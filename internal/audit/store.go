package audit

import "context"

type Repository interface {
	ListEntries(context context.Context, tenantID int64, f Filter, limit, offset int) ([]*Entry, int, error)
	CreateEntry(context context.Context, e *Entry) error
}
