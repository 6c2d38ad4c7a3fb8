package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xforum/backend/internal/models"
)

func TestTotalPoints(t *testing.T) {
	db := newTestDB(t)
	scores := NewPostgresScoreRepository(db)
	votes := NewPostgresVoteRepository(db)
	votes.now = fixedClock(0)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice, "First post")

	points, err := scores.TotalPoints(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, points, "an authored post alone is worth two points")

	_, err = votes.CastVote(bob.ID, post.ID, models.VoteTypeLike)
	require.NoError(t, err)

	points, err = scores.TotalPoints(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, points)
}

func TestTotalPointsIgnoresDislikes(t *testing.T) {
	db := newTestDB(t)
	scores := NewPostgresScoreRepository(db)
	votes := NewPostgresVoteRepository(db)
	votes.now = fixedClock(0)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice, "First post")

	_, err := votes.CastVote(bob.ID, post.ID, models.VoteTypeDislike)
	require.NoError(t, err)

	points, err := scores.TotalPoints(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, points, "dislikes must not change points")
}

func TestTotalPointsCountsLikesOnOwnPostsOnly(t *testing.T) {
	db := newTestDB(t)
	scores := NewPostgresScoreRepository(db)
	votes := NewPostgresVoteRepository(db)
	votes.now = fixedClock(0)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	bobPost := createTestPost(t, db, bob, "Bob's post")

	// alice liking someone else's post earns her nothing
	_, err := votes.CastVote(alice.ID, bobPost.ID, models.VoteTypeLike)
	require.NoError(t, err)

	points, err := scores.TotalPoints(alice.ID)
	require.NoError(t, err)
	assert.Zero(t, points)

	points, err = scores.TotalPoints(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, points)
}

func TestLeaderboardOrderingAndTieBreak(t *testing.T) {
	db := newTestDB(t)
	scores := NewPostgresScoreRepository(db)
	votes := NewPostgresVoteRepository(db)
	votes.now = fixedClock(0)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	// alice: 2 posts = 4 points. bob: 1 post + 1 like = 3. carol: 1 post = 2.
	createTestPost(t, db, alice, "Alice one")
	createTestPost(t, db, alice, "Alice two")
	bobPost := createTestPost(t, db, bob, "Bob one")
	createTestPost(t, db, carol, "Carol one")

	_, err := votes.CastVote(carol.ID, bobPost.ID, models.VoteTypeLike)
	require.NoError(t, err)

	board, err := scores.Leaderboard(0)
	require.NoError(t, err)
	require.Len(t, board, 3)

	assert.Equal(t, "alice", board[0].Username)
	assert.EqualValues(t, 4, board[0].Points)
	assert.EqualValues(t, 2, board[0].PostCount)
	assert.Equal(t, "bob", board[1].Username)
	assert.EqualValues(t, 3, board[1].Points)
	assert.Equal(t, "carol", board[2].Username)
	assert.EqualValues(t, 2, board[2].Points)

	// dave ties carol on points; the lower user ID ranks first
	dave := createTestUser(t, db, "dave")
	createTestPost(t, db, dave, "Dave one")

	board, err = scores.Leaderboard(0)
	require.NoError(t, err)
	require.Len(t, board, 4)
	assert.Equal(t, "carol", board[2].Username)
	assert.Equal(t, "dave", board[3].Username)
}

func TestLeaderboardLimit(t *testing.T) {
	db := newTestDB(t)
	scores := NewPostgresScoreRepository(db)

	for _, name := range []string{"alice", "bob", "carol"} {
		createTestUser(t, db, name)
	}

	board, err := scores.Leaderboard(2)
	require.NoError(t, err)
	assert.Len(t, board, 2)
}

func TestLeaderboardDefaultSize(t *testing.T) {
	db := newTestDB(t)
	scores := NewPostgresScoreRepository(db)

	for _, name := range []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"} {
		createTestUser(t, db, name)
	}

	board, err := scores.Leaderboard(0)
	require.NoError(t, err)
	assert.Len(t, board, DefaultLeaderboardSize)
}
