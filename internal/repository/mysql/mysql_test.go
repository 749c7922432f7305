package mysql

import (
	"context"
	"testing"

	"Buddy_Community/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, Setup(db, true))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, name string) *model.User {
	t.Helper()
	u := &model.User{ID: id, Username: name, Email: name + "@buddy.gg", Avatar: "av-" + id}
	require.NoError(t, db.Create(u).Error)
	return u
}

func outboxEvents(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var rows []model.CommunityOutbox
	require.NoError(t, db.Order("id ASC").Find(&rows).Error)
	events := make([]string, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.EventType)
	}
	return events
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedUser(t, db, "u1", "alice")
	require.NoError(t, db.Create(&model.Avatar{ID: "av-u1", Image: "alice.png"}).Error)

	users := &UserRepository{DB: db}
	u, err := users.FindByEmail(ctx, "alice@buddy.gg")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	u, err = users.FindByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = users.FindByEmail(ctx, "nobody@buddy.gg")
	require.NoError(t, err)
	assert.Nil(t, u)

	avatars := &AvatarRepository{DB: db}
	img, err := avatars.FindImage(ctx, "av-u1")
	require.NoError(t, err)
	assert.Equal(t, "alice.png", img)

	img, err = avatars.FindImage(ctx, "av-none")
	require.NoError(t, err)
	assert.Empty(t, img)
}

func TestCommunityLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedUser(t, db, "a", "alice")
	seedUser(t, db, "b", "bob")

	repo := &CommunityRepository{DB: db}
	c := &model.Community{ID: "c1", Name: "Foo", OwnerID: "a"}
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.FindByID(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.HasMember("a"))
	assert.Len(t, got.Members, 1)

	changed, err := repo.AddMember(ctx, "c1", "b")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.AddMember(ctx, "c1", "b")
	require.NoError(t, err)
	assert.False(t, changed)

	got, err = repo.FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, got.HasMember("b"))

	joined, err := repo.FindJoined(ctx, "b")
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.Equal(t, "c1", joined[0].ID)

	changed, err = repo.RemoveMember(ctx, "c1", "b")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.RemoveMember(ctx, "c1", "b")
	require.NoError(t, err)
	assert.False(t, changed)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Members, 1)

	got, err = repo.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Equal(t, []string{
		model.EventCommunityCreated,
		model.EventCommunityJoined,
		model.EventCommunityLeft,
	}, outboxEvents(t, db))
}

func TestLikeRecomputesCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedUser(t, db, "a", "alice")
	seedUser(t, db, "b", "bob")

	require.NoError(t, (&CommunityRepository{DB: db}).Create(ctx, &model.Community{ID: "c1", Name: "Foo", OwnerID: "a"}))
	posts := &PostRepository{DB: db}
	require.NoError(t, posts.Create(ctx, &model.Post{ID: "p1", OwnerID: "a", CommunityID: "c1", Title: "hello"}))

	likes := &PostLikeRepository{DB: db}
	for _, uid := range []string{"a", "b"} {
		changed, err := likes.LikePost(ctx, "p1", uid)
		require.NoError(t, err)
		assert.True(t, changed)
	}
	changed, err := likes.LikePost(ctx, "p1", "b")
	require.NoError(t, err)
	assert.False(t, changed)

	p, err := posts.FindByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.LikeCount)
	assert.Len(t, p.Likes, 2)
	assert.True(t, p.LikedBy("b"))

	assert.True(t, p.LikedBy("a"))

	comments := &CommentRepository{DB: db}
	require.NoError(t, comments.Create(ctx, "p1", &model.Comment{ID: "m1", OwnerID: "b", Message: "gg"}))
	changed, err = likes.LikeComment(ctx, "m1", "a")
	require.NoError(t, err)
	assert.True(t, changed)

	m, err := comments.FindByID(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 1, m.LikeCount)
	assert.True(t, m.LikedBy("a"))

	p, err = posts.FindByID(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, p.Comments, 1)
	assert.Equal(t, "m1", p.Comments[0].ID)
}

func TestDeleteCommunityCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedUser(t, db, "a", "alice")

	communities := &CommunityRepository{DB: db}
	posts := &PostRepository{DB: db}
	comments := &CommentRepository{DB: db}
	likes := &PostLikeRepository{DB: db}

	require.NoError(t, communities.Create(ctx, &model.Community{ID: "c1", Name: "Foo", OwnerID: "a"}))
	require.NoError(t, posts.Create(ctx, &model.Post{ID: "p1", OwnerID: "a", CommunityID: "c1", Title: "t"}))
	require.NoError(t, comments.Create(ctx, "p1", &model.Comment{ID: "m1", OwnerID: "a", Message: "m"}))
	_, err := likes.LikePost(ctx, "p1", "a")
	require.NoError(t, err)
	_, err = likes.LikeComment(ctx, "m1", "a")
	require.NoError(t, err)

	require.NoError(t, communities.Delete(ctx, "c1", "a"))

	for _, m := range []any{
		&model.Community{}, &model.CommunityMember{}, &model.Post{}, &model.Comment{},
		&model.PostLike{}, &model.CommentLike{}, &model.PostComment{},
	} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.Zero(t, n, "%T", m)
	}
	events := outboxEvents(t, db)
	assert.Equal(t, model.EventCommunityDeleted, events[len(events)-1])
}

func TestDeleteCommentKeepsPost(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedUser(t, db, "a", "alice")

	require.NoError(t, (&CommunityRepository{DB: db}).Create(ctx, &model.Community{ID: "c1", Name: "Foo", OwnerID: "a"}))
	posts := &PostRepository{DB: db}
	comments := &CommentRepository{DB: db}
	require.NoError(t, posts.Create(ctx, &model.Post{ID: "p1", OwnerID: "a", CommunityID: "c1", Title: "t"}))
	require.NoError(t, comments.Create(ctx, "p1", &model.Comment{ID: "m1", OwnerID: "a", Message: "m"}))

	require.NoError(t, comments.Delete(ctx, "m1", "a"))

	m, err := comments.FindByID(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, m)
	p, err := posts.FindByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Empty(t, p.Comments)

	require.NoError(t, posts.Delete(ctx, "p1", "a"))
	p, err = posts.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestOutboxRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedUser(t, db, "a", "alice")
	require.NoError(t, (&CommunityRepository{DB: db}).Create(ctx, &model.Community{ID: "c1", Name: "Foo", OwnerID: "a"}))
	require.NoError(t, (&CommunityRepository{DB: db}).Create(ctx, &model.Community{ID: "c2", Name: "Bar", OwnerID: "a"}))

	repo := &OutboxRepository{DB: db}
	rows, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0].Payload, `"name":"Foo"`)

	require.NoError(t, repo.SuccessUpdate(ctx, rows[0].ID))
	require.NoError(t, repo.RetryUpdate(ctx, rows[1].ID, 2))

	rows, err = repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Retry)

	require.NoError(t, repo.RetryUpdate(ctx, rows[0].ID, 2))
	rows, err = repo.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)

	var failed model.CommunityOutbox
	require.NoError(t, db.Where("aggregate_id = ?", "c2").First(&failed).Error)
	assert.Equal(t, int8(model.OutboxFailed), failed.Status)
}

func TestLikeCountReconciler(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedUser(t, db, "a", "alice")
	require.NoError(t, (&CommunityRepository{DB: db}).Create(ctx, &model.Community{ID: "c1", Name: "Foo", OwnerID: "a"}))
	posts := &PostRepository{DB: db}
	require.NoError(t, posts.Create(ctx, &model.Post{ID: "p1", OwnerID: "a", CommunityID: "c1", Title: "t"}))
	require.NoError(t, posts.Create(ctx, &model.Post{ID: "p2", OwnerID: "a", CommunityID: "c1", Title: "t"}))
	_, err := (&PostLikeRepository{DB: db}).LikePost(ctx, "p1", "a")
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.Post{}).Where("id = ?", "p2").UpdateColumn("like_count", 7).Error)

	repo := &LikeCountReconcilerRepo{DB: db}
	list, next, err := repo.ReconcileList(ctx, PostLikes, 1, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p1", next)
	assert.Equal(t, int64(1), list[0].LikeCount)

	list, next, err = repo.ReconcileList(ctx, PostLikes, 10, next)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p2", next)

	n, err := repo.RealLikes(ctx, PostLikes, "p2")
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, repo.Reconcile(ctx, PostLikes, "p2", n))

	p, err := posts.FindByID(ctx, "p2")
	require.NoError(t, err)
	assert.Zero(t, p.LikeCount)

	list, next, err = repo.ReconcileList(ctx, PostLikes, 10, "p2")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, "p2", next)
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, GormLogLevel("debug"))
	assert.Equal(t, logger.Warn, GormLogLevel("info"))
	assert.Equal(t, logger.Silent, GormLogLevel("silent"))
}
