package database

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"yatube/internal/core/apperror"
	"yatube/internal/core/listing"
)

const mysqlDuplicateEntry = 1062

// translate maps store errors onto the domain error kinds, keeping what as context.
func translate(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	what := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrap(apperror.ErrNotFound, what)
	case isDuplicate(err):
		return errors.Wrapf(apperror.ErrConflict, "%s: %v", what, err)
	default:
		return errors.Wrap(err, what)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// containsExpr is a case-sensitive substring predicate on column.
func containsExpr(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "mysql" {
		return "INSTR(BINARY " + column + ", ?) > 0"
	}
	return "INSTR(" + column + ", ?) > 0"
}

// page counts the rows matched by query, resolves the requested page and
// loads it into a listing.Page. order must give a total ordering; preloads
// are only applied to the page query.
func page[T any](query *gorm.DB, order []string, preloads []string, pg listing.Paginator, requested int) (*listing.Page[T], error) {
	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, err
	}
	w := pg.Window(count, requested)
	out := listing.NewPage[T](w)
	if w.Limit == 0 {
		return out, nil
	}
	q := query.Session(&gorm.Session{})
	for _, o := range order {
		q = q.Order(o)
	}
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Offset(w.Offset).Limit(w.Limit).Find(&out.Items).Error; err != nil {
		return nil, err
	}
	return out, nil
}
