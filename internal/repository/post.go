package repository

import (
	"context"

	"gorm.io/gorm"

	"pulse/internal/cache"
	"pulse/internal/models"
	"pulse/internal/observability"
)

// PostFilter narrows and pages post listings. ViewerID zero means an
// anonymous read: viewer flags come back false without touching the
// likes or favorites tables.
type PostFilter struct {
	AuthorID *uint
	Sort     string // "latest" (default) or "popular"
	ViewerID uint
	Limit    int
	Offset   int
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	// GetByIDs bulk-fetches posts by ID with viewer flags. Missing IDs
	// are silently absent from the result.
	GetByIDs(ctx context.Context, ids []uint, viewerID uint) ([]models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	// Delete removes a post together with its likes, favorites,
	// comments, and notifications in one transaction.
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withViewerFlags selects posts plus the per-viewer liked/favorited
// booleans. Counters come straight off the posts row; the flags are
// EXISTS probes against the join tables, or constant false when the
// read is anonymous.
func withViewerFlags(db *gorm.DB, viewerID uint) *gorm.DB {
	if viewerID == 0 {
		return db.Select("posts.*, ? AS liked, ? AS favorited", false, false)
	}
	return db.Select(
		"posts.*, "+
			"EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS liked, "+
			"EXISTS(SELECT 1 FROM favorites WHERE favorites.post_id = posts.id AND favorites.user_id = ?) AS favorited",
		viewerID, viewerID,
	)
}

func applyFilter(db *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.AuthorID != nil {
		db = db.Where("author_id = ?", *filter.AuthorID)
	}
	return db
}

func orderBy(sort string) string {
	if sort == "popular" {
		return "likes_count DESC, id DESC"
	}
	return "created_at DESC, id DESC"
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("insert", "posts")()
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	defer observability.TrackQuery("select", "posts")()

	var post models.Post
	fetch := func() error {
		return withViewerFlags(r.db.WithContext(ctx), viewerID).
			Preload("Author").
			First(&post, id).Error
	}

	// Anonymous reads share one cache entry; viewer-scoped reads are
	// personal and always hit the database.
	if viewerID == 0 {
		if err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch); err != nil {
			return nil, err
		}
		return &post, nil
	}
	if err := fetch(); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []uint, viewerID uint) ([]models.Post, error) {
	defer observability.TrackQuery("select", "posts")()

	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	var posts []models.Post
	err := withViewerFlags(r.db.WithContext(ctx), viewerID).
		Preload("Author").
		Where("posts.id IN ?", ids).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// firstPageSize matches the service-level default page size. Only the
// anonymous, unfiltered, newest-first first page is hot enough to share
// a cache entry; everything else goes straight to the database.
const firstPageSize = 10

type cachedPostPage struct {
	Posts []models.Post `json:"posts"`
	Total int64         `json:"total"`
}

func listCacheable(filter PostFilter) bool {
	return filter.ViewerID == 0 && filter.AuthorID == nil &&
		filter.Offset == 0 && filter.Limit == firstPageSize &&
		filter.Sort != "popular"
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]models.Post, int64, error) {
	defer observability.TrackQuery("select", "posts")()

	if listCacheable(filter) {
		var page cachedPostPage
		err := cache.Aside(ctx, cache.PostsListKey(), &page, cache.ListTTL, func() error {
			var err error
			page.Posts, page.Total, err = r.list(ctx, filter)
			return err
		})
		if err != nil {
			return nil, 0, err
		}
		return page.Posts, page.Total, nil
	}
	return r.list(ctx, filter)
}

func (r *postRepository) list(ctx context.Context, filter PostFilter) ([]models.Post, int64, error) {
	var total int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := applyFilter(withViewerFlags(r.db.WithContext(ctx), filter.ViewerID), filter).
		Preload("Author").
		Order(orderBy(filter.Sort)).
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update", "posts")()
	if err := r.db.WithContext(ctx).Model(post).
		Updates(map[string]any{"title": post.Title, "content": post.Content}).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "posts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
