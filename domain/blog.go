package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// BlogComment lives embedded in the blog record, with its own like set.
type BlogComment struct {
	ID     string    `json:"id"`
	UserID uint      `json:"user_id"`
	Text   string    `json:"text"`
	Likes  []uint    `json:"likes"`
	Date   time.Time `json:"date"`
}

type Blog struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description;not null" json:"description"`
	Author      string         `gorm:"column:author;not null" json:"author"`
	BlogImage   string         `gorm:"column:blog_image;not null" json:"blog_image"`
	PublishDate time.Time      `gorm:"column:publish_date" json:"publish_date"`
	Likes       datatypes.JSON `gorm:"column:likes;type:jsonb" json:"likes"`
	Comments    datatypes.JSON `gorm:"column:comments;type:jsonb" json:"comments"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Blog) TableName() string {
	return "blogs"
}

func (b *Blog) LikeSet() ([]uint, error) {
	if len(b.Likes) == 0 {
		return []uint{}, nil
	}

	var likes []uint
	if err := json.Unmarshal(b.Likes, &likes); err != nil {
		return nil, err
	}

	return likes, nil
}

func (b *Blog) SetLikes(likes []uint) error {
	raw, err := json.Marshal(likes)
	if err != nil {
		return err
	}

	b.Likes = datatypes.JSON(raw)
	return nil
}

func (b *Blog) CommentList() ([]BlogComment, error) {
	if len(b.Comments) == 0 {
		return []BlogComment{}, nil
	}

	var comments []BlogComment
	if err := json.Unmarshal(b.Comments, &comments); err != nil {
		return nil, err
	}

	return comments, nil
}

func (b *Blog) SetComments(comments []BlogComment) error {
	raw, err := json.Marshal(comments)
	if err != nil {
		return err
	}

	b.Comments = datatypes.JSON(raw)
	return nil
}
