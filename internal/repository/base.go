package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"pulse/internal/models"
)

// Counter columns on posts. Counters are only ever moved by relative
// deltas inside the same transaction as the row change they reflect.
const (
	colLikes     = "likes_count"
	colFavorites = "favorites_count"
	colComments  = "comments_count"
)

// adjustCounter applies a relative delta to one of the posts counter
// columns. UpdateColumn keeps updated_at untouched.
func adjustCounter(tx *gorm.DB, postID uint, column string, delta int) error {
	return tx.Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

// postAuthor reads the author of a post inside a transaction, returning
// gorm.ErrRecordNotFound when the post does not exist.
func postAuthor(tx *gorm.DB, postID uint) (uint, error) {
	var post models.Post
	if err := tx.Select("id", "author_id").First(&post, postID).Error; err != nil {
		return 0, err
	}
	return post.AuthorID, nil
}

// isUniqueViolation reports whether err came from a unique index. The
// pgconn check covers connections opened without error translation;
// the string check covers sqlite in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
