package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleCustomer    = "customer"
	RoleTransporter = "transporter"
	RoleAdmin       = "admin"
)

type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"column:name;not null" json:"name"`
	Email      string         `gorm:"column:email;unique;not null" json:"email"`
	Phone      string         `gorm:"column:phone" json:"phone,omitempty"`
	Password   string         `gorm:"column:password;not null" json:"-"`
	Role       string         `gorm:"column:role;default:customer" json:"role"`
	IsVerified bool           `gorm:"column:is_verified;default:false" json:"is_verified"`
	OTP        string         `gorm:"column:otp" json:"-"`
	OTPExpires *time.Time     `gorm:"column:otp_expires" json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserSummary is the slice of a user attached to order responses and emails.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}
