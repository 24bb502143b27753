package repository

import (
	"context"

	"gorm.io/gorm"

	"pulse/internal/cache"
	"pulse/internal/models"
	"pulse/internal/observability"
)

type CommentRepository interface {
	// Create inserts the comment and increments the post's comment
	// counter in one transaction. The post author is returned so
	// callers can notify.
	Create(ctx context.Context, comment *models.Comment) (authorID uint, err error)
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, int64, error)
	// Delete soft-deletes the comment and decrements the counter in one
	// transaction.
	Delete(ctx context.Context, comment *models.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (uint, error) {
	defer observability.TrackQuery("insert", "comments")()

	var authorID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := postAuthor(tx, comment.PostID)
		if err != nil {
			return err
		}
		authorID = author

		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return adjustCounter(tx, comment.PostID, colComments, +1)
	})
	if err != nil {
		return 0, err
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return authorID, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	defer observability.TrackQuery("select", "comments")()

	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, int64, error) {
	defer observability.TrackQuery("select", "comments")()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Delete(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("delete", "comments")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Comment{}, comment.ID).Error; err != nil {
			return err
		}
		return adjustCounter(tx, comment.PostID, colComments, -1)
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}
