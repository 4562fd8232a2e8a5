package models

import "time"

// CommentStage tags which part of the workflow a comment belongs to.
type CommentStage string

const (
	StageGeneral          CommentStage = "general"
	StagePilotSubmission  CommentStage = "pilot_submission"
	StageEditorSubmission CommentStage = "editor_submission"
	StageClientFeedback   CommentStage = "client_feedback"
)

// Comment is an immutable entry of an order's timeline.
type Comment struct {
	ID         string       `db:"id" json:"id"`
	OrderID    string       `db:"order_id" json:"order_id"`
	AuthorRole Role         `db:"author_role" json:"author_role"`
	AuthorID   string       `db:"author_id" json:"author_id"`
	AuthorName string       `db:"author_name" json:"author_name"`
	Stage      CommentStage `db:"stage" json:"stage"`
	Text       string       `db:"text" json:"text"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
}
