package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"pulse/internal/models"
	"pulse/internal/repository"
)

// interactionRepoStub is a stub for repository.InteractionRepository.
type interactionRepoStub struct {
	addFn             func(context.Context, uint, uint, models.InteractionKind) (*models.Interaction, uint, bool, error)
	removeFn          func(context.Context, uint, uint, models.InteractionKind) (bool, error)
	favoritePostIDsFn func(context.Context, uint, int, int) ([]uint, int64, error)
}

func (s *interactionRepoStub) Add(ctx context.Context, userID, postID uint, kind models.InteractionKind) (*models.Interaction, uint, bool, error) {
	return s.addFn(ctx, userID, postID, kind)
}
func (s *interactionRepoStub) Remove(ctx context.Context, userID, postID uint, kind models.InteractionKind) (bool, error) {
	return s.removeFn(ctx, userID, postID, kind)
}
func (s *interactionRepoStub) FavoritePostIDs(ctx context.Context, userID uint, limit, offset int) ([]uint, int64, error) {
	return s.favoritePostIDsFn(ctx, userID, limit, offset)
}

func noopInteractionRepo() *interactionRepoStub {
	return &interactionRepoStub{
		addFn: func(_ context.Context, userID, postID uint, kind models.InteractionKind) (*models.Interaction, uint, bool, error) {
			return &models.Interaction{ID: 1, UserID: userID, PostID: postID, Kind: kind}, 1, true, nil
		},
		removeFn:          func(_ context.Context, _, _ uint, _ models.InteractionKind) (bool, error) { return true, nil },
		favoritePostIDsFn: func(_ context.Context, _ uint, _, _ int) ([]uint, int64, error) { return nil, 0, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn   func(context.Context, *models.Post) error
	getByIDFn  func(context.Context, uint, uint) (*models.Post, error)
	getByIDsFn func(context.Context, []uint, uint) ([]models.Post, error)
	listFn     func(context.Context, repository.PostFilter) ([]models.Post, int64, error)
	updateFn   func(context.Context, *models.Post) error
	deleteFn   func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) GetByIDs(ctx context.Context, ids []uint, viewerID uint) ([]models.Post, error) {
	return s.getByIDsFn(ctx, ids, viewerID)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.PostFilter) ([]models.Post, int64, error) {
	return s.listFn(ctx, filter)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, post *models.Post) error {
			post.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, Title: "post", AuthorID: 1}, nil
		},
		getByIDsFn: func(_ context.Context, _ []uint, _ uint) ([]models.Post, error) { return nil, nil },
		listFn: func(_ context.Context, _ repository.PostFilter) ([]models.Post, int64, error) {
			return nil, 0, nil
		},
		updateFn: func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) (uint, error)
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, int, int) ([]models.Comment, int64, error)
	deleteFn     func(context.Context, *models.Comment) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) (uint, error) {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, int64, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) Delete(ctx context.Context, comment *models.Comment) error {
	return s.deleteFn(ctx, comment)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, comment *models.Comment) (uint, error) {
			comment.ID = 1
			return 1, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, Text: "comment", AuthorID: 1, PostID: 1}, nil
		},
		listByPostFn: func(_ context.Context, _ uint, _, _ int) ([]models.Comment, int64, error) {
			return nil, 0, nil
		},
		deleteFn: func(_ context.Context, _ *models.Comment) error { return nil },
	}
}

// notificationRepoStub is a stub for repository.NotificationRepository
// that records created rows in memory.
type notificationRepoStub struct {
	createFn      func(context.Context, *models.Notification) error
	listFn        func(context.Context, uint, int, int) ([]models.Notification, int64, int64, error)
	markReadFn    func(context.Context, uint, uint) (bool, error)
	markAllReadFn func(context.Context, uint) (int64, error)
	createdRows   []models.Notification
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	if s.createFn != nil {
		if err := s.createFn(ctx, n); err != nil {
			return err
		}
	}
	s.createdRows = append(s.createdRows, *n)
	return nil
}
func (s *notificationRepoStub) ListByRecipient(ctx context.Context, recipientID uint, limit, offset int) ([]models.Notification, int64, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, recipientID, limit, offset)
	}
	return nil, 0, 0, nil
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, recipientID, id uint) (bool, error) {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, recipientID, id)
	}
	return true, nil
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	if s.markAllReadFn != nil {
		return s.markAllReadFn(ctx, recipientID)
	}
	return 0, nil
}

func newNotificationService(repo *notificationRepoStub) *NotificationService {
	return NewNotificationService(repo, nil)
}

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "VALIDATION_ERROR")
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "NOT_FOUND")
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "FORBIDDEN")
}
