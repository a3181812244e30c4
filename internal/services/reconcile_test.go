package services

import (
	"testing"

	"burrow/internal/models"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type reconcileSuite struct {
	suite.Suite
	db         *gorm.DB
	votes      *VoteService
	reconciler *ReconcileService
	author     *models.User
	post       *models.Post
	comment    *models.Comment
}

func TestReconcileSuite(t *testing.T) {
	suite.Run(t, new(reconcileSuite))
}

func (s *reconcileSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.votes = NewVoteService(s.db)
	s.reconciler = NewReconcileService(s.db)
	s.author = createUser(s.T(), s.db, "author")
	s.post = createPost(s.T(), s.db, s.author, "p1")
	s.comment = createComment(s.T(), s.db, s.post, s.author)

	// Three voters: +1 and +1 on the post, -1 on the comment.
	for i, value := range []int{1, 1} {
		voter := createUser(s.T(), s.db, "pv"+string(rune('a'+i)))
		_, err := s.votes.Cast(voter.ID, models.PostTarget(s.post.ID), value)
		s.Require().NoError(err)
	}
	voter := createUser(s.T(), s.db, "cv")
	_, err := s.votes.Cast(voter.ID, models.CommentTarget(s.comment.ID), -1)
	s.Require().NoError(err)
}

func (s *reconcileSuite) TestRecomputeUserKarmaRepairsDrift() {
	// Corrupt the projections out of band.
	s.Require().NoError(s.db.Model(&models.User{}).Where("id = ?", s.author.ID).
		UpdateColumns(map[string]interface{}{"post_karma": 40, "comment_karma": -7}).Error)

	breakdown, err := s.reconciler.RecomputeUserKarma(s.author.ID)
	s.Require().NoError(err)
	s.Require().Equal(2, breakdown.Post)
	s.Require().Equal(-1, breakdown.Comment)
	s.Require().Equal(1, breakdown.Total)

	author := reloadUser(s.T(), s.db, s.author.ID)
	s.Require().Equal(2, author.PostKarma)
	s.Require().Equal(-1, author.CommentKarma)
}

func (s *reconcileSuite) TestRecomputeUserKarmaPassesAwardBucketsThrough() {
	s.Require().NoError(s.db.Model(&models.User{}).Where("id = ?", s.author.ID).
		UpdateColumns(map[string]interface{}{"awardee_karma": 5, "awarder_karma": 3}).Error)

	breakdown, err := s.reconciler.RecomputeUserKarma(s.author.ID)
	s.Require().NoError(err)
	s.Require().Equal(5, breakdown.Awardee)
	s.Require().Equal(3, breakdown.Awarder)
	s.Require().Equal(2-1+5+3, breakdown.Total)

	// The award buckets themselves stay untouched.
	author := reloadUser(s.T(), s.db, s.author.ID)
	s.Require().Equal(5, author.AwardeeKarma)
	s.Require().Equal(3, author.AwarderKarma)
}

func (s *reconcileSuite) TestRecomputeUserKarmaIdempotent() {
	first, err := s.reconciler.RecomputeUserKarma(s.author.ID)
	s.Require().NoError(err)

	var logsAfterFirst int64
	s.Require().NoError(s.db.Model(&models.KarmaLog{}).
		Where("action = ?", ActionReconciliation).Count(&logsAfterFirst).Error)

	second, err := s.reconciler.RecomputeUserKarma(s.author.ID)
	s.Require().NoError(err)
	s.Require().Equal(first, second)

	// A clean re-run moves nothing, so it logs nothing either.
	var logsAfterSecond int64
	s.Require().NoError(s.db.Model(&models.KarmaLog{}).
		Where("action = ?", ActionReconciliation).Count(&logsAfterSecond).Error)
	s.Require().Equal(logsAfterFirst, logsAfterSecond)
}

func (s *reconcileSuite) TestRecomputeUserKarmaMissingUser() {
	_, err := s.reconciler.RecomputeUserKarma(9999)
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *reconcileSuite) TestRecomputeCountersRepairsDrift() {
	s.Require().NoError(s.db.Model(&models.Post{}).Where("id = ?", s.post.ID).
		UpdateColumns(map[string]interface{}{"upvotes": 99, "downvotes": 99, "score": 0}).Error)

	s.Require().NoError(s.reconciler.RecomputeCounters(models.PostTarget(s.post.ID)))

	post := reloadPost(s.T(), s.db, s.post.ID)
	s.Require().Equal(2, post.Upvotes)
	s.Require().Zero(post.Downvotes)
	s.Require().Equal(2, post.Score)
}

func (s *reconcileSuite) TestRecomputeCommentCounters() {
	s.Require().NoError(s.db.Model(&models.Comment{}).Where("id = ?", s.comment.ID).
		UpdateColumns(map[string]interface{}{"upvotes": 5, "downvotes": 0, "score": 5}).Error)

	s.Require().NoError(s.reconciler.RecomputeCounters(models.CommentTarget(s.comment.ID)))

	comment := reloadComment(s.T(), s.db, s.comment.ID)
	s.Require().Zero(comment.Upvotes)
	s.Require().Equal(1, comment.Downvotes)
	s.Require().Equal(-1, comment.Score)
}

func (s *reconcileSuite) TestRecomputeCountersMissingTarget() {
	err := s.reconciler.RecomputeCounters(models.PostTarget(9999))
	s.Require().ErrorIs(err, ErrNotFound)
}
