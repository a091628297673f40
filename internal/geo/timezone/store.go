package timezone

import "context"

type Repository interface {
	ListTimezones(context context.Context, f Filter, limit, offset int) ([]*Timezone, int, error)
	GetTimezone(context context.Context, id int64) (*Timezone, error)
	GetTimezoneByName(context context.Context, name string) (*Timezone, error)

	CreateTimezone(context context.Context, tz *Timezone) error
	UpdateTimezone(context context.Context, tz *Timezone) error

	// Deletes return dberr.ErrNotFound when no row matched.
	DeleteTimezone(context context.Context, id int64) error
	DeleteTimezoneByName(context context.Context, name string) error
}
