package models

import (
	"time"
)

const (
	ModActionRetractVote = "retract_vote"
)

// ModerationLog records every administrative action against user content,
// one structured row per action.
type ModerationLog struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ActorID    uint       `gorm:"not null;index" json:"actor_id"` // the acting admin
	Actor      User       `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"actor"`
	Action     string     `gorm:"size:50;not null" json:"action"`
	TargetKind TargetKind `gorm:"type:varchar(10)" json:"target_kind"`
	TargetID   uint       `json:"target_id"`
	SubjectID  uint       `gorm:"index" json:"subject_id"` // the user the action was taken against
	Reason     string     `gorm:"type:text" json:"reason"`
	CreatedAt  time.Time  `json:"created_at"`
}
