package models

import (
	"time"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash
	Avatar   string `gorm:"default:🦊" json:"avatar"`
	Bio      string `gorm:"size:200" json:"bio"`
	Role     string `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	Status   int    `gorm:"default:0" json:"status"`                     // 0: normal, 1: muted, 2: banned

	// Karma buckets. PostKarma and CommentKarma are derived projections of
	// the votes table and are mutated only by the vote engine or replaced
	// by reconciliation. The award buckets belong to the awards subsystem
	// and are passed through untouched here.
	PostKarma    int `gorm:"default:0" json:"post_karma"`
	CommentKarma int `gorm:"default:0" json:"comment_karma"`
	AwardeeKarma int `gorm:"default:0" json:"awardee_karma"`
	AwarderKarma int `gorm:"default:0" json:"awarder_karma"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// No DeletedAt for hard delete
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// TotalKarma is the sum shown on profiles.
func (u *User) TotalKarma() int {
	return u.PostKarma + u.CommentKarma + u.AwardeeKarma + u.AwarderKarma
}
