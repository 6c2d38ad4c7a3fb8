package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xforum/backend/internal/models"
	"github.com/xforum/backend/internal/notifications"
)

func TestCreateCommentNotifiesPostAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	repo.now = fixedClock(0)

	author := createTestUser(t, db, "alice")
	commenter := createTestUser(t, db, "bob")
	post := createTestPost(t, db, author, "Discussion")

	comment, err := repo.CreateComment(commenter.ID, post.ID, nil, "nice post")
	require.NoError(t, err)

	var notifs []models.Notification
	require.NoError(t, db.Where("user_id = ?", author.ID).Find(&notifs).Error)
	require.Len(t, notifs, 1)
	assert.Equal(t, notifications.EventNewComment, notifs[0].Name)

	payload := notifications.Decode(notifs[0].PayloadJSON)
	assert.Equal(t, "bob", payload["commenter_username"])
	assert.EqualValues(t, post.ID, payload["post_id"])
	assert.Equal(t, "Discussion", payload["post_title"])
	assert.EqualValues(t, comment.ID, payload["comment_id"])
}

func TestCreateCommentOnOwnPostDoesNotNotify(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	repo.now = fixedClock(0)

	author := createTestUser(t, db, "alice")
	post := createTestPost(t, db, author, "Discussion")

	_, err := repo.CreateComment(author.ID, post.ID, nil, "replying to myself")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReplyNotifiesParentAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	repo.now = fixedClock(0)

	postAuthor := createTestUser(t, db, "alice")
	commenter := createTestUser(t, db, "bob")
	replier := createTestUser(t, db, "carol")
	post := createTestPost(t, db, postAuthor, "Discussion")

	parent, err := repo.CreateComment(commenter.ID, post.ID, nil, "top level")
	require.NoError(t, err)

	reply, err := repo.CreateComment(replier.ID, post.ID, &parent.ID, "a reply")
	require.NoError(t, err)

	// The parent comment's author gets the reply notification
	var bobNotifs []models.Notification
	require.NoError(t, db.Where("user_id = ?", commenter.ID).Find(&bobNotifs).Error)
	require.Len(t, bobNotifs, 1)
	assert.Equal(t, notifications.EventNewReply, bobNotifs[0].Name)

	payload := notifications.Decode(bobNotifs[0].PayloadJSON)
	assert.Equal(t, "carol", payload["replier_username"])
	assert.EqualValues(t, reply.ID, payload["comment_id"])

	// The post author only ever saw bob's top-level comment
	var aliceNotifs []models.Notification
	require.NoError(t, db.Where("user_id = ?", postAuthor.ID).Find(&aliceNotifs).Error)
	require.Len(t, aliceNotifs, 1)
	assert.Equal(t, notifications.EventNewComment, aliceNotifs[0].Name)
}

func TestReplyToOwnCommentDoesNotNotify(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	repo.now = fixedClock(0)

	author := createTestUser(t, db, "alice")
	commenter := createTestUser(t, db, "bob")
	post := createTestPost(t, db, author, "Discussion")

	parent, err := repo.CreateComment(commenter.ID, post.ID, nil, "top level")
	require.NoError(t, err)

	var before int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&before).Error)

	_, err = repo.CreateComment(commenter.ID, post.ID, &parent.ID, "following up")
	require.NoError(t, err)

	var after int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&after).Error)
	assert.Equal(t, before, after)
}

func TestCreateCommentParentOnOtherPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	repo.now = fixedClock(0)

	author := createTestUser(t, db, "alice")
	postA := createTestPost(t, db, author, "Post A")
	postB := createTestPost(t, db, author, "Post B")

	parent, err := repo.CreateComment(author.ID, postA.ID, nil, "on post A")
	require.NoError(t, err)

	_, err = repo.CreateComment(author.ID, postB.ID, &parent.ID, "wrong post")
	assert.ErrorIs(t, err, ErrCommentPostMismatch)
}

func TestCreateCommentParentNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)

	author := createTestUser(t, db, "alice")
	post := createTestPost(t, db, author, "Discussion")

	missing := uint(9999)
	_, err := repo.CreateComment(author.ID, post.ID, &missing, "orphan reply")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestGetThreadByPostID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	repo.now = fixedClock(0)

	author := createTestUser(t, db, "alice")
	post := createTestPost(t, db, author, "Discussion")

	first, err := repo.CreateComment(author.ID, post.ID, nil, "first")
	require.NoError(t, err)
	second, err := repo.CreateComment(author.ID, post.ID, nil, "second")
	require.NoError(t, err)
	reply, err := repo.CreateComment(author.ID, post.ID, &first.ID, "reply to first")
	require.NoError(t, err)
	nested, err := repo.CreateComment(author.ID, post.ID, &reply.ID, "nested reply")
	require.NoError(t, err)

	thread, err := repo.GetThreadByPostID(post.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)

	assert.Equal(t, first.ID, thread[0].ID)
	assert.Equal(t, second.ID, thread[1].ID)
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, reply.ID, thread[0].Replies[0].ID)
	require.Len(t, thread[0].Replies[0].Replies, 1)
	assert.Equal(t, nested.ID, thread[0].Replies[0].Replies[0].ID)
	assert.Empty(t, thread[1].Replies)
}

func TestDeleteCommentTree(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	repo.now = fixedClock(0)

	author := createTestUser(t, db, "alice")
	post := createTestPost(t, db, author, "Discussion")

	root, err := repo.CreateComment(author.ID, post.ID, nil, "root")
	require.NoError(t, err)
	child, err := repo.CreateComment(author.ID, post.ID, &root.ID, "child")
	require.NoError(t, err)
	_, err = repo.CreateComment(author.ID, post.ID, &child.ID, "grandchild")
	require.NoError(t, err)
	other, err := repo.CreateComment(author.ID, post.ID, nil, "unrelated")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteCommentTree(root.ID))

	var remaining []models.Comment
	require.NoError(t, db.Where("post_id = ?", post.ID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID, remaining[0].ID)
}

func TestDeleteCommentTreeNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)

	err := repo.DeleteCommentTree(9999)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
