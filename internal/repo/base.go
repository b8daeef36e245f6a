package repo

import (
	"context"

	"github.com/angelmondragon/wms-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// WithTx returns a Base bound to tx; a nil tx keeps the current connection.
func (b Base) WithTx(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx}
}

// NewestFirst is the list ordering shared by every paginated resource. The id
// tie-breaker keeps pages disjoint when rows share a timestamp.
const NewestFirst = "created_at DESC, id DESC"

// Paginate counts the rows matched by query and loads one page into dest.
// The count and the page are separate statements; totals can drift from the
// page under concurrent writes. Scopes apply to the page fetch only, which
// keeps Preload out of the COUNT.
func Paginate(query *gorm.DB, params pagination.Params, order string, dest any, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	params = params.Normalize()

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	if order == "" {
		order = NewestFirst
	}
	err := query.Session(&gorm.Session{}).
		Scopes(scopes...).
		Order(order).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(dest).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
