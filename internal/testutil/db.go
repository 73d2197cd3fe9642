// Package testutil holds helpers shared by package tests. It must only be
// imported from _test.go files.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"yatube/internal/config"
	"yatube/internal/core/user"
)

// NewDB opens a private in-memory SQLite database with the full schema.
// It is closed when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.Must(uuid.NewV4()))
	db, err := gorm.Open(sqlite.Open(dsn), config.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and serializes writers.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// CreateUser inserts an account with a throwaway password.
func CreateUser(t *testing.T, db *gorm.DB, username string) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &user.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		Password: string(hash),
	}
	require.NoError(t, db.WithContext(context.Background()).Create(u).Error)
	return u
}

// Clock returns increasing whole-second timestamps, one minute apart.
type Clock struct {
	next time.Time
}

// NewClock starts at a fixed instant.
func NewClock() *Clock {
	return &Clock{next: time.Date(2024, time.March, 25, 18, 31, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	now := c.next
	c.next = c.next.Add(time.Minute)
	return now
}
