package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pulse/internal/models"
)

func TestInteractionAdd_CreatesRowAndBumpsCounter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInteractionRepository(db)

	author := createUser(t, db, "author")
	actor := createUser(t, db, "actor")
	post := createPost(t, db, author.ID, "first")

	row, authorID, created, err := repo.Add(context.Background(), actor.ID, post.ID, models.KindLike)
	require.NoError(t, err)

	assert.True(t, created)
	assert.Equal(t, author.ID, authorID)
	assert.Equal(t, actor.ID, row.UserID)
	assert.Equal(t, post.ID, row.PostID)
	assert.Equal(t, models.KindLike, row.Kind)

	counter, rows := likesCount(t, db, post.ID)
	assert.Equal(t, 1, counter)
	assert.Equal(t, int64(1), rows)
}

func TestInteractionAdd_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInteractionRepository(db)

	author := createUser(t, db, "author")
	actor := createUser(t, db, "actor")
	post := createPost(t, db, author.ID, "first")

	first, _, created, err := repo.Add(context.Background(), actor.ID, post.ID, models.KindLike)
	require.NoError(t, err)
	require.True(t, created)

	second, _, created, err := repo.Add(context.Background(), actor.ID, post.ID, models.KindLike)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	counter, rows := likesCount(t, db, post.ID)
	assert.Equal(t, 1, counter, "repeated add must not move the counter")
	assert.Equal(t, int64(1), rows)
}

func TestInteractionAdd_KindsAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInteractionRepository(db)

	author := createUser(t, db, "author")
	actor := createUser(t, db, "actor")
	post := createPost(t, db, author.ID, "first")

	_, _, created, err := repo.Add(context.Background(), actor.ID, post.ID, models.KindLike)
	require.NoError(t, err)
	require.True(t, created)

	_, _, created, err = repo.Add(context.Background(), actor.ID, post.ID, models.KindFavorite)
	require.NoError(t, err)
	assert.True(t, created, "a like must not block a favorite on the same post")

	var post2 models.Post
	require.NoError(t, db.First(&post2, post.ID).Error)
	assert.Equal(t, 1, post2.LikesCount)
	assert.Equal(t, 1, post2.FavoritesCount)
}

func TestInteractionAdd_PostMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInteractionRepository(db)

	actor := createUser(t, db, "actor")

	_, _, _, err := repo.Add(context.Background(), actor.ID, 9999, models.KindLike)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestInteractionRemove_DeletesRowAndDecrementsCounter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInteractionRepository(db)

	author := createUser(t, db, "author")
	actor := createUser(t, db, "actor")
	post := createPost(t, db, author.ID, "first")

	_, _, _, err := repo.Add(context.Background(), actor.ID, post.ID, models.KindLike)
	require.NoError(t, err)

	removed, err := repo.Remove(context.Background(), actor.ID, post.ID, models.KindLike)
	require.NoError(t, err)
	assert.True(t, removed)

	counter, rows := likesCount(t, db, post.ID)
	assert.Equal(t, 0, counter)
	assert.Equal(t, int64(0), rows)
}

func TestInteractionRemove_AbsentRowIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInteractionRepository(db)

	author := createUser(t, db, "author")
	actor := createUser(t, db, "actor")
	post := createPost(t, db, author.ID, "first")

	removed, err := repo.Remove(context.Background(), actor.ID, post.ID, models.KindFavorite)
	require.NoError(t, err)
	assert.False(t, removed)

	var post2 models.Post
	require.NoError(t, db.First(&post2, post.ID).Error)
	assert.Equal(t, 0, post2.FavoritesCount, "removing an absent row must not move the counter")
}

func TestInteractionRemove_PostMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInteractionRepository(db)

	actor := createUser(t, db, "actor")

	// There is no join row to remove, so a missing post is just another
	// no-op rather than an error.
	removed, err := repo.Remove(context.Background(), actor.ID, 9999, models.KindLike)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestInteraction_AddRemoveCycleKeepsCounterExact(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInteractionRepository(db)

	author := createUser(t, db, "author")
	post := createPost(t, db, author.ID, "first")

	actors := []*models.User{
		createUser(t, db, "a"),
		createUser(t, db, "b"),
		createUser(t, db, "c"),
	}
	ctx := context.Background()
	for _, actor := range actors {
		_, _, _, err := repo.Add(ctx, actor.ID, post.ID, models.KindLike)
		require.NoError(t, err)
	}
	_, err := repo.Remove(ctx, actors[1].ID, post.ID, models.KindLike)
	require.NoError(t, err)
	// Double remove and double add from the survivors.
	_, err = repo.Remove(ctx, actors[1].ID, post.ID, models.KindLike)
	require.NoError(t, err)
	_, _, _, err = repo.Add(ctx, actors[0].ID, post.ID, models.KindLike)
	require.NoError(t, err)

	counter, rows := likesCount(t, db, post.ID)
	assert.Equal(t, int64(counter), rows, "counter must equal join-row count")
	assert.Equal(t, 2, counter)
}

func TestInteraction_ConcurrentAddRemoveKeepsCounterExact(t *testing.T) {
	db := setupTestDB(t)
	// sqlite's shared-cache mode rejects overlapping write transactions,
	// so funnel the pool through a single connection; the goroutines
	// still interleave at the call level.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := NewInteractionRepository(db)
	author := createUser(t, db, "author")
	post := createPost(t, db, author.ID, "contended")

	const actors = 16
	users := make([]*models.User, actors)
	for i := range users {
		users[i] = createUser(t, db, fmt.Sprintf("actor%d", i))
	}

	ctx := context.Background()
	var wg sync.WaitGroup
	for i, user := range users {
		wg.Add(1)
		go func(i int, userID uint) {
			defer wg.Done()
			_, _, _, err := repo.Add(ctx, userID, post.ID, models.KindLike)
			assert.NoError(t, err)
			// Every odd actor takes the like back, the second remove
			// being a deliberate no-op.
			if i%2 == 1 {
				_, err := repo.Remove(ctx, userID, post.ID, models.KindLike)
				assert.NoError(t, err)
				_, err = repo.Remove(ctx, userID, post.ID, models.KindLike)
				assert.NoError(t, err)
			}
		}(i, user.ID)
	}
	wg.Wait()

	counter, rows := likesCount(t, db, post.ID)
	assert.Equal(t, int64(counter), rows, "counter must equal join-row count")
	assert.Equal(t, actors/2, counter)
}

func TestFavoritePostIDs_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInteractionRepository(db)

	author := createUser(t, db, "author")
	actor := createUser(t, db, "actor")
	ctx := context.Background()

	var postIDs []uint
	for _, title := range []string{"one", "two", "three"} {
		post := createPost(t, db, author.ID, title)
		postIDs = append(postIDs, post.ID)
		_, _, _, err := repo.Add(ctx, actor.ID, post.ID, models.KindFavorite)
		require.NoError(t, err)
	}

	ids, total, err := repo.FavoritePostIDs(ctx, actor.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []uint{postIDs[2], postIDs[1], postIDs[0]}, ids)
}

func TestFavoritePostIDs_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInteractionRepository(db)

	author := createUser(t, db, "author")
	actor := createUser(t, db, "actor")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		post := createPost(t, db, author.ID, "post")
		_, _, _, err := repo.Add(ctx, actor.ID, post.ID, models.KindFavorite)
		require.NoError(t, err)
	}

	ids, total, err := repo.FavoritePostIDs(ctx, actor.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, ids, 2)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: likes.user_id, likes.post_id")))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}
