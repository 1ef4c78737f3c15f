package comment

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xinrengui/blog-backend/internal/content"
	"github.com/xinrengui/blog-backend/internal/platform/mailer"
	"github.com/xinrengui/blog-backend/internal/user"
	"github.com/xinrengui/blog-backend/pkg/hashid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakePostFinder 用固定的文章表替代CMS客户端。
type fakePostFinder struct {
	posts map[string]*content.Post
}

func (f *fakePostFinder) PostByID(_ context.Context, id string) (*content.Post, error) {
	return f.posts[id], nil
}

// fakeSender 记录所有发出的邮件。
type fakeSender struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (f *fakeSender) Send(_ context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

// fakeDirectory 按用户ID返回预置的邮箱。
type fakeDirectory struct {
	emails map[string]string
}

func (f *fakeDirectory) PrimaryEmail(_ context.Context, userID string) (string, error) {
	return f.emails[userID], nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存sqlite每个连接各是一个库，必须收紧到单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Comment{}))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, sender *fakeSender, directory *fakeDirectory) *Service {
	t.Helper()
	codec, err := hashid.NewCodec("test-salt")
	require.NoError(t, err)

	finder := &fakePostFinder{posts: map[string]*content.Post{
		"post-1": {Slug: "hello-world", Title: "你好，世界"},
	}}
	return NewService(db, codec, finder, sender, directory, "https://xinrengui.eu.org", true)
}

func textRequest(text string, parentID *string) CreateRequest {
	var req CreateRequest
	req.Body.Text = text
	req.ParentID = parentID
	return req
}

func TestCreateAndListAscending(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	service := newTestService(t, db, sender, &fakeDirectory{})
	ctx := context.Background()

	alice := user.Identity{ID: "user_alice", FirstName: "Alice"}
	first, err := service.Create(ctx, "post-1", alice, textRequest("第一条", nil))
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.Equal(t, "post-1", first.PostID)
	require.Nil(t, first.ParentID)

	_, err = service.Create(ctx, "post-1", alice, textRequest("第二条", nil))
	require.NoError(t, err)

	list, err := service.ListByPost(ctx, "post-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "第一条", list[0].Body.Text)
	require.Equal(t, "第二条", list[1].Body.Text)

	// 列表DTO不重复携带postId
	require.Empty(t, list[0].PostID)

	// 顶层评论不触发任何通知
	require.Empty(t, sender.sent)
}

func TestCreateUnknownPost(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, &fakeSender{}, &fakeDirectory{})

	_, err := service.Create(context.Background(), "no-such-post",
		user.Identity{ID: "user_alice"}, textRequest("评论", nil))
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestReplyNotifiesParentAuthor(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	directory := &fakeDirectory{emails: map[string]string{"user_alice": "alice@example.com"}}
	service := newTestService(t, db, sender, directory)
	ctx := context.Background()

	parent, err := service.Create(ctx, "post-1",
		user.Identity{ID: "user_alice", FirstName: "Alice"}, textRequest("顶层评论", nil))
	require.NoError(t, err)

	reply, err := service.Create(ctx, "post-1",
		user.Identity{ID: "user_bob", FirstName: "Bob"}, textRequest("回复你", &parent.ID))
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	require.Equal(t, parent.ID, *reply.ParentID)

	// 恰好一封通知，发给父评论作者
	require.Len(t, sender.sent, 1)
	require.Equal(t, "alice@example.com", sender.sent[0].To)
	require.Contains(t, sender.sent[0].HTML, "Bob")
	require.Contains(t, sender.sent[0].HTML, "/blog/hello-world")
}

func TestReplyToSelfSkipsNotification(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	directory := &fakeDirectory{emails: map[string]string{"user_alice": "alice@example.com"}}
	service := newTestService(t, db, sender, directory)
	ctx := context.Background()

	alice := user.Identity{ID: "user_alice", FirstName: "Alice"}
	parent, err := service.Create(ctx, "post-1", alice, textRequest("自言", nil))
	require.NoError(t, err)

	_, err = service.Create(ctx, "post-1", alice, textRequest("自语", &parent.ID))
	require.NoError(t, err)

	// 自己回复自己不发通知
	require.Empty(t, sender.sent)
}

func TestUndecodableParentIDBecomesTopLevel(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	service := newTestService(t, db, sender, &fakeDirectory{})

	bogus := "not-a-real-id"
	dto, err := service.Create(context.Background(), "post-1",
		user.Identity{ID: "user_bob"}, textRequest("评论", &bogus))
	require.NoError(t, err)
	require.Nil(t, dto.ParentID)
	require.Empty(t, sender.sent)
}
