package models

import (
	"time"
)

// TargetKind says what kind of content a vote applies to.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

func (k TargetKind) Valid() bool {
	return k == TargetPost || k == TargetComment
}

// Target identifies the one piece of content a vote applies to.
// Exactly one kind and one id; there is no "both" or "neither" state,
// unlike a pair of nullable foreign keys.
type Target struct {
	Kind TargetKind
	ID   uint
}

func PostTarget(id uint) Target {
	return Target{Kind: TargetPost, ID: id}
}

func CommentTarget(id uint) Target {
	return Target{Kind: TargetComment, ID: id}
}

// Vote is the authoritative record of one user's opinion on one target.
// Value is 1 or -1 only: a retracted vote is deleted, never stored as zero.
// The composite unique index guarantees at most one live vote per
// (user, target) pair at the schema level, not just by application check.
type Vote struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_votes_user_target" json:"user_id"`
	TargetKind TargetKind `gorm:"type:varchar(10);not null;uniqueIndex:idx_votes_user_target;index:idx_votes_target" json:"target_kind"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_votes_user_target;index:idx_votes_target" json:"target_id"`
	Value      int        `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Target rebuilds the tagged target from the stored columns.
func (v *Vote) Target() Target {
	return Target{Kind: v.TargetKind, ID: v.TargetID}
}
