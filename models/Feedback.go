package models

import "time"

type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"userId"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FeedbackInput - used to validate feedback submissions
type FeedbackInput struct {
	Message string `json:"message" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
}
