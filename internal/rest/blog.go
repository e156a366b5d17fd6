package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/shakeel7521951/bursa-backend/business/blog"
	"github.com/shakeel7521951/bursa-backend/domain"
	"github.com/shakeel7521951/bursa-backend/pkg/logger"
)

type BlogService interface {
	CreateBlog(ctx context.Context, in blog.BlogInput) (domain.Blog, error)
	GetAllBlogs(ctx context.Context) ([]domain.Blog, error)
	GetBlog(ctx context.Context, id uint) (domain.Blog, error)
	UpdateBlog(ctx context.Context, id uint, in blog.BlogInput) (domain.Blog, error)
	DeleteBlog(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, blogID, userID uint) (domain.Blog, bool, error)
	AddComment(ctx context.Context, blogID, userID uint, text string) (domain.Blog, error)
	ToggleCommentLike(ctx context.Context, blogID uint, commentID string, userID uint) (domain.Blog, error)
}

type BlogHandler struct {
	blogService BlogService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewBlogHandler(blogService BlogService) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type BlogRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Author      string    `json:"author" validate:"required"`
	BlogImage   string    `json:"blog_image" validate:"required"`
	PublishDate time.Time `json:"publish_date,omitempty"`
}

type BlogUpdateRequest struct {
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author,omitempty"`
	BlogImage   string    `json:"blog_image,omitempty"`
	PublishDate time.Time `json:"publish_date,omitempty"`
}

type BlogCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

func blogIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}

func (h *BlogHandler) CreateBlog(c echo.Context) error {
	var req BlogRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	post, err := h.blogService.CreateBlog(ctx, blog.BlogInput{
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		BlogImage:   req.BlogImage,
		PublishDate: req.PublishDate,
	})
	if err != nil {
		logger.Error("Failed to create blog", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Blog created successfully",
		"blog":    post,
	})
}

func (h *BlogHandler) GetAllBlogs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	posts, err := h.blogService.GetAllBlogs(ctx)
	if err != nil {
		logger.Error("Failed to get blogs", err)
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Blogs retrieved successfully",
		"blogs":   posts,
	})
}

func (h *BlogHandler) GetBlog(c echo.Context) error {
	blogID, err := blogIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid blog ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	post, err := h.blogService.GetBlog(ctx, blogID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Blog retrieved successfully",
		"blog":    post,
	})
}

func (h *BlogHandler) UpdateBlog(c echo.Context) error {
	blogID, err := blogIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid blog ID"})
	}

	var req BlogUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	post, err := h.blogService.UpdateBlog(ctx, blogID, blog.BlogInput{
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		BlogImage:   req.BlogImage,
		PublishDate: req.PublishDate,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Blog updated successfully",
		"blog":    post,
	})
}

func (h *BlogHandler) DeleteBlog(c echo.Context) error {
	blogID, err := blogIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid blog ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.blogService.DeleteBlog(ctx, blogID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Blog deleted successfully",
	})
}

// ToggleLike flips the logged-in user's like on a post.
func (h *BlogHandler) ToggleLike(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	blogID, err := blogIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid blog ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	post, liked, err := h.blogService.ToggleLike(ctx, blogID, userID)
	if err != nil {
		return serviceError(c, err)
	}

	message := "Blog unliked"
	if liked {
		message = "Blog liked"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": message,
		"blog":    post,
	})
}

func (h *BlogHandler) AddComment(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	blogID, err := blogIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid blog ID"})
	}

	var req BlogCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	post, err := h.blogService.AddComment(ctx, blogID, userID, req.Text)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Comment added successfully",
		"blog":    post,
	})
}

// ToggleCommentLike flips the user's like on a single comment.
func (h *BlogHandler) ToggleCommentLike(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	blogID, err := blogIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid blog ID"})
	}

	commentID := c.Param("commentId")
	if commentID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid comment ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	post, err := h.blogService.ToggleCommentLike(ctx, blogID, commentID, userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Comment like toggled",
		"blog":    post,
	})
}
