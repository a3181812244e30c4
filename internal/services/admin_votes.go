package services

import (
	"burrow/internal/models"

	"gorm.io/gorm"
)

// AdminVoteService reverses a specific vote's effects on behalf of a
// moderator. It reuses the same transition rule as ordinary retraction
// (requested value 0 against the vote's stored value) and additionally
// writes a moderation-log entry in the same transaction, so the log can
// never be skipped on a successful retraction.
type AdminVoteService struct {
	db *gorm.DB
}

func NewAdminVoteService(db *gorm.DB) *AdminVoteService {
	return &AdminVoteService{db: db}
}

// Retract removes voteID and rolls its counter and karma effects back.
// Returns ErrNotFound when the vote no longer exists (already retracted or
// reconciled away); callers that tolerate double-retraction can treat that
// as success, but the distinction is theirs to make.
func (s *AdminVoteService) Retract(voteID uint, actingAdmin *models.User, reason string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		store := NewVoteStore(tx)

		// First read only locates the target; the authoritative read
		// happens again under the target lock below.
		vote, err := store.GetByID(voteID)
		if err != nil {
			return err
		}
		target := vote.Target()

		state, err := lockTarget(tx, target)
		if err != nil {
			return err
		}

		// Re-read under the lock. A concurrent retraction may have
		// removed the vote between the two reads; applying its deltas
		// twice would corrupt the counters.
		if vote, err = store.GetByID(voteID); err != nil {
			return err
		}

		delta := ComputeCounterDelta(vote.Value, 0)
		if err := applyCounterDelta(tx, target, delta); err != nil {
			return err
		}
		if err := applyKarma(tx, state.authorID, target.Kind, KarmaDelta(delta.Score, vote.UserID == state.authorID), ActionModRetraction); err != nil {
			return err
		}
		if err := store.DeleteByID(voteID); err != nil {
			return err
		}

		entry := models.ModerationLog{
			ActorID:    actingAdmin.ID,
			Action:     models.ModActionRetractVote,
			TargetKind: target.Kind,
			TargetID:   target.ID,
			SubjectID:  vote.UserID,
			Reason:     reason,
		}
		return tx.Create(&entry).Error
	})
}
