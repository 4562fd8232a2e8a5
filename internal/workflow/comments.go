package workflow

import (
	"context"
	"fmt"
	"strings"

	"droneVideoOps/models"
	"droneVideoOps/repository"
)

// AddComment appends a comment to an order's timeline. An empty stage means general.
func (s *Service) AddComment(ctx context.Context, actor Actor, ref string, stage models.CommentStage, text string) (*models.Comment, error) {
	text, err := requireComment(text)
	if err != nil {
		return nil, err
	}
	switch stage {
	case "":
		stage = models.StageGeneral
	case models.StageGeneral, models.StagePilotSubmission, models.StageEditorSubmission, models.StageClientFeedback:
	default:
		return nil, fieldError("stage", fmt.Sprintf("Stage %q is not a comment stage", stage))
	}
	var out *models.Comment
	err = s.command(ctx, "add_comment", ref, nil, func(ctx context.Context, tx *repository.Store) error {
		o, err := loadOrder(ctx, tx, ref)
		if err != nil {
			return err
		}
		out, err = tx.Comments.Create(ctx, &models.Comment{
			OrderID:    o.ID,
			AuthorRole: actor.Role,
			AuthorID:   actor.ID,
			AuthorName: actor.label(),
			Stage:      stage,
			Text:       strings.TrimSpace(text),
			CreatedAt:  s.clock(),
		})
		if err != nil {
			return fmt.Errorf("append comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListComments returns an order's timeline, most recent first.
func (s *Service) ListComments(ctx context.Context, ref string) ([]models.Comment, error) {
	ctx, span := s.query(ctx, "list_comments")
	defer span.End()
	o, err := loadOrder(ctx, s.store, ref)
	if err != nil {
		return nil, err
	}
	return s.store.Comments.ListByOrder(ctx, o.ID)
}
