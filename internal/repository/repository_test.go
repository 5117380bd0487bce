package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-service/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.SavedPost{}, &model.CategoryStat{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.New().String(), Name: "u-" + email, Email: email, Password: "hash"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPost(t *testing.T, db *gorm.DB, authorID, category string) *model.Post {
	t.Helper()
	p := &model.Post{
		ID:       uuid.New().String(),
		Title:    "t",
		Category: category,
		Summary:  "s",
		Content:  "<p>c</p>",
		Cover:    "https://img.example/c.png",
		AuthorID: authorID,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestUserRepository_EmailUnique(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &model.User{ID: uuid.New().String(), Name: "a", Email: "a@example.com", Password: "h"}
	require.NoError(t, repo.Create(ctx, first))

	dup := &model.User{ID: uuid.New().String(), Name: "b", Email: "a@example.com", Password: "h"}
	err := repo.Create(ctx, dup)
	require.Error(t, err)

	// 冲突写入不应产生第二条记录
	var cnt int64
	require.NoError(t, db.Model(&model.User{}).Where("email = ?", "a@example.com").Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)

	exists, err := repo.EmailExists(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.EmailExists(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "find@example.com")
	got, err := repo.FindByEmail(ctx, "find@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSavedPostRepository_SetSemantics(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSavedPostRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "saver@example.com")
	p := seedPost(t, db, u.ID, "Coding")

	require.NoError(t, repo.Add(ctx, u.ID, p.ID))
	// 重复收藏不报错也不重复
	require.NoError(t, repo.Add(ctx, u.ID, p.ID))

	ids, err := repo.ListPostIDs(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, ids)

	require.NoError(t, repo.Remove(ctx, u.ID, p.ID))
	ids, err = repo.ListPostIDs(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// 删除不存在的收藏是 no-op
	require.NoError(t, repo.Remove(ctx, u.ID, p.ID))
}

func TestPostRepository_UpdateFields_Partial(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "author@example.com")
	p := seedPost(t, db, u.ID, "React")

	require.NoError(t, repo.UpdateFields(ctx, p.ID, map[string]interface{}{"title": "new title"}))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, p.Summary, got.Summary)
	assert.Equal(t, p.Content, got.Content)
	assert.Equal(t, p.Category, got.Category)
	assert.Equal(t, p.Cover, got.Cover)
}

func TestPostRepository_UpdateFields_MovesCategoryStat(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "move@example.com")
	p := &model.Post{
		ID:       uuid.New().String(),
		Title:    "t",
		Category: "Coding",
		Summary:  "s",
		Content:  "c",
		Cover:    "https://img.example/c.png",
		AuthorID: u.ID,
	}
	require.NoError(t, repo.CreateWithStats(ctx, p))

	// 改分类要同时迁移两边的计数
	require.NoError(t, repo.UpdateFields(ctx, p.ID, map[string]interface{}{"category": "React"}))

	byCat := categoryCounts(t, repo)
	assert.Equal(t, int64(0), byCat["Coding"])
	assert.Equal(t, int64(1), byCat["React"])

	// 分类没变则计数不动
	require.NoError(t, repo.UpdateFields(ctx, p.ID, map[string]interface{}{"category": "React", "title": "t2"}))
	byCat = categoryCounts(t, repo)
	assert.Equal(t, int64(0), byCat["Coding"])
	assert.Equal(t, int64(1), byCat["React"])
}

func categoryCounts(t *testing.T, repo PostRepository) map[string]int64 {
	t.Helper()
	stats, err := repo.CategoryStats(context.Background())
	require.NoError(t, err)
	byCat := make(map[string]int64, len(stats))
	for _, s := range stats {
		byCat[s.Category] = s.PostCount
	}
	return byCat
}

func TestPostRepository_CreateWithStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "stats@example.com")
	for i := 0; i < 2; i++ {
		p := &model.Post{
			ID:       uuid.New().String(),
			Title:    "t",
			Category: "Technology",
			Summary:  "s",
			Content:  "c",
			Cover:    "https://img.example/c.png",
			AuthorID: u.ID,
		}
		require.NoError(t, repo.CreateWithStats(ctx, p))
	}

	stats, err := repo.CategoryStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Technology", stats[0].Category)
	assert.Equal(t, int64(2), stats[0].PostCount)
}

func TestPostRepository_AddViews(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "views@example.com")
	p := seedPost(t, db, u.ID, "Nodejs")

	require.NoError(t, repo.AddViews(ctx, p.ID, 1))
	require.NoError(t, repo.AddViews(ctx, p.ID, 2))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Views)
}

func TestPostRepository_List_FilterAndPaging(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "list@example.com")
	for i := 0; i < 3; i++ {
		seedPost(t, db, u.ID, "Coding")
	}
	seedPost(t, db, u.ID, "React")

	all, err := repo.List(ctx, "", 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	coding, err := repo.List(ctx, "Coding", 0, 10)
	require.NoError(t, err)
	assert.Len(t, coding, 3)

	page, err := repo.List(ctx, "Coding", 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
