package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pulse/internal/cache"
	"pulse/internal/models"
	"pulse/internal/observability"
)

// InteractionRepository persists likes and favorites. Both kinds share
// the same shape and rules, so a single repository handles them and
// dispatches on models.InteractionKind.
type InteractionRepository interface {
	// Add records an interaction and bumps the matching post counter in
	// one transaction. When the row already exists the call is a no-op:
	// the existing row comes back with created=false and no counter
	// movement. The post author is returned so callers can notify.
	Add(ctx context.Context, userID, postID uint, kind models.InteractionKind) (row *models.Interaction, authorID uint, created bool, err error)

	// Remove deletes an interaction and decrements the matching counter
	// in one transaction. Removing an absent row is a no-op with
	// removed=false.
	Remove(ctx context.Context, userID, postID uint, kind models.InteractionKind) (removed bool, err error)

	// FavoritePostIDs pages a user's favorited post IDs newest-first,
	// together with the total favorite count for the user.
	FavoritePostIDs(ctx context.Context, userID uint, limit, offset int) ([]uint, int64, error)
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func counterColumn(kind models.InteractionKind) string {
	if kind == models.KindFavorite {
		return colFavorites
	}
	return colLikes
}

func tableName(kind models.InteractionKind) string {
	if kind == models.KindFavorite {
		return "favorites"
	}
	return "likes"
}

// findInteraction looks up the join row for (user, post, kind) and
// returns nil without error when there is none.
func findInteraction(tx *gorm.DB, userID, postID uint, kind models.InteractionKind) (*models.Interaction, error) {
	cond := map[string]any{"user_id": userID, "post_id": postID}
	switch kind {
	case models.KindFavorite:
		var fav models.Favorite
		if err := tx.Where(cond).First(&fav).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &models.Interaction{ID: fav.ID, UserID: fav.UserID, PostID: fav.PostID, Kind: kind, CreatedAt: fav.CreatedAt}, nil
	default:
		var like models.Like
		if err := tx.Where(cond).First(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &models.Interaction{ID: like.ID, UserID: like.UserID, PostID: like.PostID, Kind: kind, CreatedAt: like.CreatedAt}, nil
	}
}

func insertInteraction(tx *gorm.DB, userID, postID uint, kind models.InteractionKind) (*models.Interaction, error) {
	switch kind {
	case models.KindFavorite:
		fav := models.Favorite{UserID: userID, PostID: postID}
		if err := tx.Create(&fav).Error; err != nil {
			return nil, err
		}
		return &models.Interaction{ID: fav.ID, UserID: fav.UserID, PostID: fav.PostID, Kind: kind, CreatedAt: fav.CreatedAt}, nil
	default:
		like := models.Like{UserID: userID, PostID: postID}
		if err := tx.Create(&like).Error; err != nil {
			return nil, err
		}
		return &models.Interaction{ID: like.ID, UserID: like.UserID, PostID: like.PostID, Kind: kind, CreatedAt: like.CreatedAt}, nil
	}
}

func (r *interactionRepository) Add(ctx context.Context, userID, postID uint, kind models.InteractionKind) (*models.Interaction, uint, bool, error) {
	defer observability.TrackQuery("insert", tableName(kind))()

	var (
		row      models.Interaction
		authorID uint
		created  bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := postAuthor(tx, postID)
		if err != nil {
			return err
		}
		authorID = author

		existing, err := findInteraction(tx, userID, postID, kind)
		if err != nil {
			return err
		}
		if existing != nil {
			row = *existing
			return nil
		}

		rec, err := insertInteraction(tx, userID, postID, kind)
		if err != nil {
			return err
		}
		if err := adjustCounter(tx, postID, counterColumn(kind), +1); err != nil {
			return err
		}
		row = *rec
		created = true
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the insert race to a concurrent request. The winner
			// already moved the counter, so surface its row as a no-op.
			existing, ferr := findInteraction(r.db.WithContext(ctx), userID, postID, kind)
			if ferr == nil && existing != nil {
				return existing, authorID, false, nil
			}
		}
		return nil, 0, false, err
	}
	if created {
		// Cached reads embed the counters; drop them now that one moved.
		cache.InvalidatePost(ctx, postID)
	}
	return &row, authorID, created, nil
}

func (r *interactionRepository) Remove(ctx context.Context, userID, postID uint, kind models.InteractionKind) (bool, error) {
	defer observability.TrackQuery("delete", tableName(kind))()

	// No post existence check: the join row alone decides the outcome, so
	// removing against a missing post is just another no-op.
	removed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findInteraction(tx, userID, postID, kind)
		if err != nil {
			return err
		}
		if existing == nil {
			return nil
		}

		switch kind {
		case models.KindFavorite:
			err = tx.Delete(&models.Favorite{}, existing.ID).Error
		default:
			err = tx.Delete(&models.Like{}, existing.ID).Error
		}
		if err != nil {
			return err
		}
		if err := adjustCounter(tx, postID, counterColumn(kind), -1); err != nil {
			return err
		}
		removed = true
		return nil
	})
	if err == nil && removed {
		cache.InvalidatePost(ctx, postID)
	}
	return removed, err
}

func (r *interactionRepository) FavoritePostIDs(ctx context.Context, userID uint, limit, offset int) ([]uint, int64, error) {
	defer observability.TrackQuery("select", "favorites")()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}
