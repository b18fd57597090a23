package models

import "time"

// Platforms a game can be published on. The list is closed; anything else
// is a validation error.
const (
	PlatformPC           = "PC"
	PlatformMobile       = "Mobile"
	PlatformPCMobile     = "PC & Mobile"
	PlatformConsoles     = "Consoles"
	PlatformConsolesPlus = "Consoles + PC"
)

var platforms = map[string]bool{
	PlatformPC:           true,
	PlatformMobile:       true,
	PlatformPCMobile:     true,
	PlatformConsoles:     true,
	PlatformConsolesPlus: true,
}

func IsValidPlatform(p string) bool {
	return platforms[p]
}

type Game struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	GenreID     uint      `json:"genreId"`
	Genre       Genre     `gorm:"foreignKey:GenreID" json:"genre"`
	Platform    string    `gorm:"not null" json:"platform"`
	Image       string    `json:"image,omitempty"`
	CreatedByID uint      `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Filled from game_likes on reads, never stored.
	LikeCount int64 `gorm:"-" json:"likeCount"`
}

// GameLike is one user's like on one game. The composite unique index is
// what keeps the like set duplicate-free regardless of toggle races.
type GameLike struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	GameID uint `gorm:"not null;uniqueIndex:idx_game_user" json:"gameId"`
	UserID uint `gorm:"not null;uniqueIndex:idx_game_user" json:"userId"`
}

// GameInput - used to validate game create/update forms
type GameInput struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description" validate:"required"`
	Genre       string `form:"genre" validate:"required"`
	Platform    string `form:"platform" validate:"required"`
}
