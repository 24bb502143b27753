package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"pulse/internal/models"
	"pulse/internal/repository"
)

const maxTitleLen = 300

// PostService owns post authoring and all read composition: feed
// listings, single-post reads, and the favorites listing, each scoped
// to the requesting viewer.
type PostService struct {
	posts        repository.PostRepository
	interactions repository.InteractionRepository
}

func NewPostService(posts repository.PostRepository, interactions repository.InteractionRepository) *PostService {
	return &PostService{posts: posts, interactions: interactions}
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Content  string
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Title   string
	Content string
}

type ListPostsInput struct {
	Page     int
	Limit    int
	Sort     string
	AuthorID *uint
	ViewerID uint
}

// PostPage is one page of a post listing together with the total size
// of the filtered set.
type PostPage struct {
	Posts      []models.Post `json:"posts"`
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}

	post := &models.Post{
		Title:    title,
		Content:  in.Content,
		AuthorID: in.AuthorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetPost(ctx, post.ID, in.AuthorID)
}

func (s *PostService) GetPost(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*PostPage, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	posts, total, err := s.posts.List(ctx, repository.PostFilter{
		AuthorID: in.AuthorID,
		Sort:     in.Sort,
		ViewerID: in.ViewerID,
		Limit:    limit,
		Offset:   pageOffset(page, limit),
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &PostPage{Posts: posts, TotalCount: total, Page: page, Limit: limit}, nil
}

// ListFavorites pages the viewer's favorited posts, newest favorite
// first. The page is driven by the favorites table, then hydrated into
// posts; a favorite whose post no longer resolves is dropped from the
// page without renumbering it.
func (s *PostService) ListFavorites(ctx context.Context, userID uint, page, limit int) (*PostPage, error) {
	page, limit = normalizePage(page, limit)

	ids, total, err := s.interactions.FavoritePostIDs(ctx, userID, limit, pageOffset(page, limit))
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	posts, err := s.posts.GetByIDs(ctx, ids, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	// Bulk fetch loses the favorite ordering; project back onto it.
	byID := make(map[uint]models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}

	return &PostPage{Posts: ordered, TotalCount: total, Page: page, Limit: limit}, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("Only the author can edit this post")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}

	post.Title = title
	post.Content = in.Content
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetPost(ctx, in.PostID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.GetPost(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return models.NewForbiddenError("Only the author can delete this post")
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
