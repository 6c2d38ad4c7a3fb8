package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeIsStable(t *testing.T) {
	payload := LikePayload{LikerUsername: "bob", PostID: 7, PostTitle: "A post"}

	first, err := Encode(payload)
	require.NoError(t, err)
	second, err := Encode(payload)
	require.NoError(t, err)

	assert.Equal(t, first, second, "equal payloads must encode identically")
	assert.Equal(t, `{"liker_username":"bob","post_id":7,"post_title":"A post"}`, first)
}

func TestEncodeDistinguishesPayloads(t *testing.T) {
	a, err := Encode(LikePayload{LikerUsername: "bob", PostID: 7, PostTitle: "A post"})
	require.NoError(t, err)
	b, err := Encode(LikePayload{LikerUsername: "carol", PostID: 7, PostTitle: "A post"})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDecodeRoundTrip(t *testing.T) {
	encoded, err := Encode(CommentPayload{
		CommenterUsername: "bob",
		PostID:            7,
		PostTitle:         "A post",
		CommentID:         42,
	})
	require.NoError(t, err)

	decoded := Decode(encoded)
	require.NotNil(t, decoded)
	assert.Equal(t, "bob", decoded["commenter_username"])
	assert.EqualValues(t, 7, decoded["post_id"])
	assert.Equal(t, "A post", decoded["post_title"])
	assert.EqualValues(t, 42, decoded["comment_id"])
}

func TestDecodeInvalidJSON(t *testing.T) {
	assert.Nil(t, Decode("not json"))
}

func TestEncodeUnserializable(t *testing.T) {
	_, err := Encode(func() {})
	assert.ErrorIs(t, err, ErrPayloadSerialization)
}
