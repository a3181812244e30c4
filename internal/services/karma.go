package services

import (
	"burrow/internal/models"

	"gorm.io/gorm"
)

// Karma log action strings
const (
	ActionVoteReceived   = "vote received"
	ActionVoteChanged    = "vote changed"
	ActionVoteRetracted  = "vote retracted"
	ActionModRetraction  = "vote removed by moderator"
	ActionReconciliation = "karma reconciled"
)

// KarmaDelta is the change to the author's karma caused by a vote
// transition with the given score delta. Self-votes contribute nothing;
// the coordinator rejects them before ever reaching this point, so the
// voterIsAuthor guard only matters for callers that source their previous
// state elsewhere.
func KarmaDelta(scoreDelta int, voterIsAuthor bool) int {
	if voterIsAuthor {
		return 0
	}
	return scoreDelta
}

func karmaColumn(bucket models.KarmaBucket) string {
	if bucket == models.KarmaBucketComment {
		return "comment_karma"
	}
	return "post_karma"
}

// applyKarma moves the author's bucket by delta and writes the audit row,
// both on the caller's transaction so the change commits or rolls back
// with the vote itself.
func applyKarma(tx *gorm.DB, authorID uint, kind models.TargetKind, delta int, action string) error {
	if delta == 0 {
		return nil
	}

	bucket := models.BucketForTarget(kind)
	entry := models.KarmaLog{
		UserID: authorID,
		Delta:  delta,
		Bucket: bucket,
		Action: action,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	column := karmaColumn(bucket)
	return tx.Model(&models.User{}).
		Where("id = ?", authorID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).
		Error
}
