package services

import (
	"testing"

	"burrow/internal/models"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type adminVotesSuite struct {
	suite.Suite
	db      *gorm.DB
	votes   *VoteService
	admin   *AdminVoteService
	acting  *models.User
	author  *models.User
	voter   *models.User
	post    *models.Post
	comment *models.Comment
}

func TestAdminVotesSuite(t *testing.T) {
	suite.Run(t, new(adminVotesSuite))
}

func (s *adminVotesSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.votes = NewVoteService(s.db)
	s.admin = NewAdminVoteService(s.db)
	s.acting = createAdmin(s.T(), s.db, "mod")
	s.author = createUser(s.T(), s.db, "author")
	s.voter = createUser(s.T(), s.db, "voter")
	s.post = createPost(s.T(), s.db, s.author, "p1")
	s.comment = createComment(s.T(), s.db, s.post, s.author)
}

func (s *adminVotesSuite) castOnComment(value int) *models.Vote {
	_, err := s.votes.Cast(s.voter.ID, models.CommentTarget(s.comment.ID), value)
	s.Require().NoError(err)
	vote, err := NewVoteStore(s.db).Get(s.voter.ID, models.CommentTarget(s.comment.ID))
	s.Require().NoError(err)
	s.Require().NotNil(vote)
	return vote
}

func (s *adminVotesSuite) TestRetractUpvoteOnComment() {
	vote := s.castOnComment(1)
	s.Require().Equal(1, reloadUser(s.T(), s.db, s.author.ID).CommentKarma)

	s.Require().NoError(s.admin.Retract(vote.ID, s.acting, "rule violation"))

	comment := reloadComment(s.T(), s.db, s.comment.ID)
	s.Require().Zero(comment.Upvotes)
	s.Require().Zero(comment.Downvotes)
	s.Require().Zero(comment.Score)
	s.Require().Zero(reloadUser(s.T(), s.db, s.author.ID).CommentKarma)

	// The vote is gone.
	gone, err := NewVoteStore(s.db).Get(s.voter.ID, models.CommentTarget(s.comment.ID))
	s.Require().NoError(err)
	s.Require().Nil(gone)

	// And the moderation log records the action.
	var entries []models.ModerationLog
	s.Require().NoError(s.db.Find(&entries).Error)
	s.Require().Len(entries, 1)
	s.Require().Equal(s.acting.ID, entries[0].ActorID)
	s.Require().Equal(models.ModActionRetractVote, entries[0].Action)
	s.Require().Equal(models.TargetComment, entries[0].TargetKind)
	s.Require().Equal(s.comment.ID, entries[0].TargetID)
	s.Require().Equal(s.voter.ID, entries[0].SubjectID)
	s.Require().Equal("rule violation", entries[0].Reason)
}

func (s *adminVotesSuite) TestRetractDownvoteOnPost() {
	_, err := s.votes.Cast(s.voter.ID, models.PostTarget(s.post.ID), -1)
	s.Require().NoError(err)
	vote, err := NewVoteStore(s.db).Get(s.voter.ID, models.PostTarget(s.post.ID))
	s.Require().NoError(err)

	s.Require().NoError(s.admin.Retract(vote.ID, s.acting, "brigading"))

	post := reloadPost(s.T(), s.db, s.post.ID)
	s.Require().Zero(post.Downvotes)
	s.Require().Zero(post.Score)
	s.Require().Zero(reloadUser(s.T(), s.db, s.author.ID).PostKarma)
}

func (s *adminVotesSuite) TestRetractMissingVote() {
	err := s.admin.Retract(9999, s.acting, "whatever")
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *adminVotesSuite) TestDoubleRetractSurfacesNotFound() {
	vote := s.castOnComment(1)
	s.Require().NoError(s.admin.Retract(vote.ID, s.acting, "first"))

	err := s.admin.Retract(vote.ID, s.acting, "second")
	s.Require().ErrorIs(err, ErrNotFound)

	// The second attempt changed nothing.
	comment := reloadComment(s.T(), s.db, s.comment.ID)
	s.Require().Zero(comment.Score)
	var logCount int64
	s.Require().NoError(s.db.Model(&models.ModerationLog{}).Count(&logCount).Error)
	s.Require().EqualValues(1, logCount)
}
