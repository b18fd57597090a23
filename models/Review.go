package models

import "time"

type Review struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	GameID  uint   `gorm:"not null;index" json:"gameId"`
	UserID  uint   `gorm:"not null" json:"userId"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	Rating  int    `gorm:"not null" json:"rating"`
	Image   string `json:"image,omitempty"`

	// Cached count of comments on this review. Adjusted in the same
	// transaction as the comment write.
	CommentCount int       `gorm:"not null;default:0" json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ReviewInput - used to validate review create/update forms
type ReviewInput struct {
	Title   string `form:"title" validate:"required"`
	Content string `form:"content" validate:"required"`
	Rating  int    `form:"rating" validate:"required,gte=1,lte=10"`
}
