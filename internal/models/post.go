package models

import (
	"time"
)

type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Pid     string `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	BoardID uint   `gorm:"not null;index;default:1" json:"board_id"`
	Board   Board  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"board"`
	Title   string `gorm:"not null" json:"title"`
	URL     string `json:"url"` // Optional
	Content string `gorm:"type:text" json:"content"`

	// Denormalized vote counters. Score == Upvotes - Downvotes after every
	// committed operation; mutated only by the vote engine and
	// reconciliation, never by content-editing code.
	Upvotes   int `gorm:"default:0" json:"upvotes"`
	Downvotes int `gorm:"default:0" json:"downvotes"`
	Score     int `gorm:"default:0" json:"score"`

	Views     int       `gorm:"default:0" json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled at query time, not a column
	CommentCount int `gorm:"-" json:"comment_count"`
}
