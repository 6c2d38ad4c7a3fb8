// Package notifications defines the notification event kinds and their
// payload schemas. A notification is identified by (user, event name,
// encoded payload), so encoding must be canonical: payloads are fixed-field
// structs and Encode marshals fields in declaration order, which makes equal
// logical payloads always produce identical keys.
package notifications

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Event kinds
const (
	EventNewLike    = "new_like"
	EventNewComment = "new_comment"
	EventNewReply   = "new_reply"
)

// MaxPerUser is the soft cap on stored notifications per user. Inserting
// beyond it evicts the single oldest notification.
const MaxPerUser = 150

// ErrPayloadSerialization indicates a payload could not be encoded. With the
// typed payloads below this should never happen; dedup correctness depends
// on stable serialization, so callers must treat it as fatal.
var ErrPayloadSerialization = errors.New("notification payload serialization failed")

// LikePayload is the payload of a new_like event sent to a post's author
type LikePayload struct {
	LikerUsername string `json:"liker_username"`
	PostID        uint   `json:"post_id"`
	PostTitle     string `json:"post_title"`
}

// CommentPayload is the payload of a new_comment event sent to a post's author
type CommentPayload struct {
	CommenterUsername string `json:"commenter_username"`
	PostID            uint   `json:"post_id"`
	PostTitle         string `json:"post_title"`
	CommentID         uint   `json:"comment_id"`
}

// ReplyPayload is the payload of a new_reply event sent to the parent
// comment's author
type ReplyPayload struct {
	ReplierUsername string `json:"replier_username"`
	PostID          uint   `json:"post_id"`
	PostTitle       string `json:"post_title"`
	CommentID       uint   `json:"comment_id"`
}

// Encode returns the canonical JSON form of a payload
func Encode(payload any) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPayloadSerialization, err)
	}
	return string(b), nil
}

// Decode parses an encoded payload into a generic map for API responses
func Decode(encoded string) map[string]any {
	var payload map[string]any
	if err := json.Unmarshal([]byte(encoded), &payload); err != nil {
		return nil
	}
	return payload
}
