package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pulse/internal/database"
	"pulse/internal/models"
)

// setupTestDB opens a per-test in-memory database with the full schema.
// The named shared-cache DSN keeps every connection in the pool on the
// same database while still isolating tests from each other.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, authorID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{Title: title, Content: "content of " + title, AuthorID: authorID}
	require.NoError(t, db.Create(post).Error)
	return post
}

func likesCount(t *testing.T, db *gorm.DB, postID uint) (counter int, rows int64) {
	t.Helper()
	var post models.Post
	require.NoError(t, db.First(&post, postID).Error)
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&rows).Error)
	return post.LikesCount, rows
}
