package config

import (
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"yatube/internal/core/comment"
	"yatube/internal/core/follower"
	"yatube/internal/core/group"
	"yatube/internal/core/post"
	"yatube/internal/core/user"
)

// DB is the process-wide database handle.
var DB *gorm.DB

// gormLogConfig keeps slow queries and real errors; a lookup that finds no
// row is an expected 404, not a database error.
var gormLogConfig = logger.Config{
	SlowThreshold:             200 * time.Millisecond,
	LogLevel:                  logger.Warn,
	IgnoreRecordNotFoundError: true,
	Colorful:                  true,
}

func newGormLogger(w logger.Writer) logger.Interface {
	return logger.New(w, gormLogConfig)
}

// GormConfig is shared by the MySQL connection and test databases.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log.New(os.Stdout, "\r\n", log.LstdFlags)),
	}
}

// InitDB opens the MySQL connection.
func InitDB(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), GormConfig())
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	DB = db
	Logger.Info("Database connected")
	return nil
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&group.Group{},
		&post.Post{},
		&comment.Comment{},
		&follower.Follow{},
	)
}
