package blog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shakeel7521951/bursa-backend/domain"
	"github.com/shakeel7521951/bursa-backend/pkg/logger"
)

type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	FindByID(ctx context.Context, id uint) (domain.Blog, error)
	FindAll(ctx context.Context) ([]domain.Blog, error)
	Update(ctx context.Context, blog *domain.Blog) error
	UpdateEngagement(ctx context.Context, blog *domain.Blog) error
	Delete(ctx context.Context, id uint) error
}

type BlogService struct {
	blogRepo BlogRepository
}

func NewBlogService(blogRepo BlogRepository) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
	}
}

type BlogInput struct {
	Title       string
	Description string
	Author      string
	BlogImage   string
	PublishDate time.Time
}

func (s *BlogService) CreateBlog(ctx context.Context, in BlogInput) (domain.Blog, error) {
	if in.Title == "" || in.Description == "" || in.Author == "" || in.BlogImage == "" {
		return domain.Blog{}, domain.NewValidationError("all blog fields are required")
	}

	publishDate := in.PublishDate
	if publishDate.IsZero() {
		publishDate = time.Now()
	}

	post := domain.Blog{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Author:      strings.TrimSpace(in.Author),
		BlogImage:   in.BlogImage,
		PublishDate: publishDate,
	}
	if err := post.SetLikes([]uint{}); err != nil {
		return domain.Blog{}, err
	}
	if err := post.SetComments([]domain.BlogComment{}); err != nil {
		return domain.Blog{}, err
	}

	if err := s.blogRepo.Create(ctx, &post); err != nil {
		logger.Error("Failed to create blog post", err)
		return domain.Blog{}, err
	}

	return post, nil
}

func (s *BlogService) GetAllBlogs(ctx context.Context) ([]domain.Blog, error) {
	return s.blogRepo.FindAll(ctx)
}

func (s *BlogService) GetBlog(ctx context.Context, id uint) (domain.Blog, error) {
	return s.blogRepo.FindByID(ctx, id)
}

func (s *BlogService) UpdateBlog(ctx context.Context, id uint, in BlogInput) (domain.Blog, error) {
	post, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Blog{}, err
	}

	if in.Title != "" {
		post.Title = strings.TrimSpace(in.Title)
	}
	if in.Description != "" {
		post.Description = in.Description
	}
	if in.Author != "" {
		post.Author = strings.TrimSpace(in.Author)
	}
	if in.BlogImage != "" {
		post.BlogImage = in.BlogImage
	}
	if !in.PublishDate.IsZero() {
		post.PublishDate = in.PublishDate
	}

	if err := s.blogRepo.Update(ctx, &post); err != nil {
		return domain.Blog{}, err
	}

	return post, nil
}

func (s *BlogService) DeleteBlog(ctx context.Context, id uint) error {
	return s.blogRepo.Delete(ctx, id)
}

// ToggleLike adds the user to the post's like set, or removes them if they
// already liked it. Returns the updated post and whether it is now liked.
func (s *BlogService) ToggleLike(ctx context.Context, blogID, userID uint) (domain.Blog, bool, error) {
	post, err := s.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		return domain.Blog{}, false, err
	}

	likes, err := post.LikeSet()
	if err != nil {
		return domain.Blog{}, false, err
	}

	likes, liked := toggleMember(likes, userID)
	if err := post.SetLikes(likes); err != nil {
		return domain.Blog{}, false, err
	}

	if err := s.blogRepo.UpdateEngagement(ctx, &post); err != nil {
		return domain.Blog{}, false, err
	}

	return post, liked, nil
}

func (s *BlogService) AddComment(ctx context.Context, blogID, userID uint, text string) (domain.Blog, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Blog{}, domain.NewValidationError("comment text is required")
	}

	post, err := s.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		return domain.Blog{}, err
	}

	comments, err := post.CommentList()
	if err != nil {
		return domain.Blog{}, err
	}

	comments = append(comments, domain.BlogComment{
		ID:     uuid.NewString(),
		UserID: userID,
		Text:   text,
		Likes:  []uint{},
		Date:   time.Now(),
	})

	if err := post.SetComments(comments); err != nil {
		return domain.Blog{}, err
	}

	if err := s.blogRepo.UpdateEngagement(ctx, &post); err != nil {
		return domain.Blog{}, err
	}

	return post, nil
}

// ToggleCommentLike flips the user's like on a single embedded comment.
func (s *BlogService) ToggleCommentLike(ctx context.Context, blogID uint, commentID string, userID uint) (domain.Blog, error) {
	post, err := s.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		return domain.Blog{}, err
	}

	comments, err := post.CommentList()
	if err != nil {
		return domain.Blog{}, err
	}

	found := false
	for i := range comments {
		if comments[i].ID == commentID {
			comments[i].Likes, _ = toggleMember(comments[i].Likes, userID)
			found = true
			break
		}
	}
	if !found {
		return domain.Blog{}, domain.NewValidationError("comment not found")
	}

	if err := post.SetComments(comments); err != nil {
		return domain.Blog{}, err
	}

	if err := s.blogRepo.UpdateEngagement(ctx, &post); err != nil {
		return domain.Blog{}, err
	}

	return post, nil
}

func toggleMember(members []uint, userID uint) ([]uint, bool) {
	for i, member := range members {
		if member == userID {
			return append(members[:i], members[i+1:]...), false
		}
	}

	return append(members, userID), true
}
