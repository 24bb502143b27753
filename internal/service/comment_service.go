package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"pulse/internal/models"
	"pulse/internal/repository"
)

const maxCommentLen = 10000

// CommentService owns comment creation, listing, and deletion, keeping
// the post's comment counter in step.
type CommentService struct {
	comments      repository.CommentRepository
	posts         repository.PostRepository
	notifications *NotificationService
}

func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	notifications *NotificationService,
) *CommentService {
	return &CommentService{comments: comments, posts: posts, notifications: notifications}
}

type CreateCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

// CommentPage is one page of a post's comments.
type CommentPage struct {
	Comments   []models.Comment `json:"comments"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Text:     text,
		AuthorID: in.UserID,
		PostID:   in.PostID,
	}
	postAuthorID, err := s.comments.Create(ctx, comment)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, models.NewInternalError(err)
	}

	// Comment and counter are committed; notify downstream.
	commentID := comment.ID
	s.notifications.Record(ctx, RecordInput{
		RecipientID: postAuthorID,
		ActorID:     in.UserID,
		Type:        models.NotificationComment,
		PostID:      in.PostID,
		CommentID:   &commentID,
	})
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, postID uint, page, limit int) (*CommentPage, error) {
	if _, err := s.posts.GetByID(ctx, postID, 0); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}

	page, limit = normalizePage(page, limit)
	comments, total, err := s.comments.ListByPost(ctx, postID, limit, pageOffset(page, limit))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &CommentPage{Comments: comments, TotalCount: total, Page: page, Limit: limit}, nil
}

// DeleteComment removes a comment. Only the comment's author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", commentID)
		}
		return models.NewInternalError(err)
	}

	if comment.AuthorID != userID {
		return models.NewForbiddenError("Only the comment author can delete this comment")
	}

	if err := s.comments.Delete(ctx, comment); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
