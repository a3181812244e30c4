package models

import (
	"time"
)

// KarmaBucket names which karma counter a change landed in.
type KarmaBucket string

const (
	KarmaBucketPost    KarmaBucket = "post"
	KarmaBucketComment KarmaBucket = "comment"
)

// BucketForTarget maps a vote target kind to the karma bucket it feeds.
func BucketForTarget(kind TargetKind) KarmaBucket {
	if kind == TargetComment {
		return KarmaBucketComment
	}
	return KarmaBucketPost
}

// KarmaLog is the audit trail for karma mutations: one row per change,
// written in the same transaction that moves the balance.
type KarmaLog struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"not null;index" json:"user_id"`
	User      User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Delta     int         `gorm:"not null" json:"delta"` // positive gain, negative loss
	Bucket    KarmaBucket `gorm:"type:varchar(10);not null" json:"bucket"`
	Action    string      `gorm:"size:100;not null" json:"action"`
	CreatedAt time.Time   `json:"created_at"`
}
