package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/xinrengui/blog-backend/internal/content"
	"github.com/xinrengui/blog-backend/internal/platform/mailer"
	"github.com/xinrengui/blog-backend/internal/user"
	"github.com/xinrengui/blog-backend/pkg/hashid"
	"gorm.io/gorm"
)

// ErrPostNotFound 表示内容CMS中不存在对应的文章。
var ErrPostNotFound = errors.New("文章不存在")

// PostFinder 抽象了按ID查询文章的能力，由内容CMS客户端实现。
type PostFinder interface {
	PostByID(ctx context.Context, id string) (*content.Post, error)
}

// CreateRequest 是发表评论的请求体。
type CreateRequest struct {
	Body struct {
		BlockID *string `json:"blockId"`
		Text    string  `json:"text" binding:"required,min=1,max=999"`
	} `json:"body" binding:"required"`
	// ParentID 是被回复评论的混淆ID
	ParentID *string `json:"parentId"`
}

// Service 封装评论的查询、发表和回复通知。
type Service struct {
	db        *gorm.DB
	codec     *hashid.Codec
	posts     PostFinder
	sender    mailer.Sender
	directory user.Directory
	baseURL   string
	notify    bool
}

// NewService 创建评论服务。notify为false时（开发模式）不发送任何通知邮件。
func NewService(db *gorm.DB, codec *hashid.Codec, posts PostFinder, sender mailer.Sender, directory user.Directory, baseURL string, notify bool) *Service {
	return &Service{
		db:        db,
		codec:     codec,
		posts:     posts,
		sender:    sender,
		directory: directory,
		baseURL:   baseURL,
		notify:    notify,
	}
}

// ListByPost 返回一篇文章的全部评论，按创建时间升序。
func (s *Service) ListByPost(ctx context.Context, postID string) ([]DTO, error) {
	var records []Comment
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("查询文章 %s 的评论失败: %w", postID, err)
	}

	dtos := make([]DTO, 0, len(records))
	for i := range records {
		dto, err := toDTO(s.codec, &records[i], false)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// Create 发表一条评论并在需要时向父评论作者发送回复通知。
// 调用方必须已确认identity有效；文章不存在时返回ErrPostNotFound。
func (s *Service) Create(ctx context.Context, postID string, identity user.Identity, req CreateRequest) (*DTO, error) {
	// 1. 校验文章确实存在于CMS中
	post, err := s.posts.PostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("校验文章 %s 失败: %w", postID, err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	// 2. 还原被回复评论的数字ID；解不开的ParentID按顶层评论处理
	var parentID *uint
	if req.ParentID != nil {
		if decoded, ok := s.codec.Decode(*req.ParentID); ok {
			parentID = &decoded
		}
	}

	// 3. 给父评论作者发回复通知（仅当作者不是评论者本人）
	if parentID != nil && s.notify {
		s.notifyParentAuthor(ctx, *parentID, identity, post, req.Body.Text)
	}

	// 4. 落库
	record := Comment{
		PostID: postID,
		UserID: identity.ID,
		UserInfo: UserInfo{
			FirstName: identity.FirstName,
			LastName:  identity.LastName,
			ImageURL:  identity.ImageURL,
		},
		Body: Body{
			BlockID: req.Body.BlockID,
			Text:    req.Body.Text,
		},
		ParentID: parentID,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("写入评论失败: %w", err)
	}

	dto, err := toDTO(s.codec, &record, true)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// notifyParentAuthor 查出父评论作者并发送回复通知。
// 通知失败只记录日志，评论本身照常发表。
func (s *Service) notifyParentAuthor(ctx context.Context, parentID uint, identity user.Identity, post *content.Post, text string) {
	var parent Comment
	err := s.db.WithContext(ctx).First(&parent, parentID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("评论通知警告: 查询父评论 %d 失败: %v\n", parentID, err)
		}
		return
	}
	if parent.UserID == identity.ID {
		return // 自己回复自己，不打扰
	}

	email, err := s.directory.PrimaryEmail(ctx, parent.UserID)
	if err != nil {
		fmt.Printf("评论通知警告: 查询用户 %s 的邮箱失败: %v\n", parent.UserID, err)
		return
	}
	if email == "" {
		return
	}

	msg := mailer.Message{
		To:      email,
		Subject: "👋 有人回复了你的评论",
		HTML:    replyEmailHTML(post, s.baseURL, identity, text),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		fmt.Printf("评论通知警告: %v\n", err)
	}
}
