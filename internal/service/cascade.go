package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/review-board/internal/repository"
)

// Cascade removes the records that reference a deleted user or review.
//
// Steps run one after another with no transaction around them. The first
// failing step stops the cascade and is returned; steps that already ran
// stay applied.
type Cascade struct {
	reviews   repository.ReviewRepository
	feedback  repository.FeedbackRepository
	assignees repository.AssigneeRepository
	logger    *slog.Logger
}

func NewCascade(
	reviews repository.ReviewRepository,
	feedback repository.FeedbackRepository,
	assignees repository.AssigneeRepository,
	logger *slog.Logger,
) *Cascade {
	return &Cascade{
		reviews:   reviews,
		feedback:  feedback,
		assignees: assignees,
		logger:    logger,
	}
}

type cascadeStep struct {
	name string
	run  func(ctx context.Context, id string) (int64, error)
}

// UserDeleted clears every edge, review and feedback that points at userID.
func (c *Cascade) UserDeleted(ctx context.Context, userID string) error {
	return c.run(ctx, "user", userID, []cascadeStep{
		{"assignees by assigneeId", c.assignees.DeleteAssigneesByAssignee},
		{"assignees by assignedEmployeeId", c.assignees.DeleteAssigneesByAssignedEmployee},
		{"reviews by employeeId", c.reviews.DeleteReviewsByEmployee},
		{"reviews by updatedBy", c.reviews.DeleteReviewsByReviewer},
		{"feedbacks by employeeId", c.feedback.DeleteFeedbackByEmployee},
	})
}

// ReviewDeleted clears the feedback attached to reviewID.
func (c *Cascade) ReviewDeleted(ctx context.Context, reviewID string) error {
	return c.run(ctx, "review", reviewID, []cascadeStep{
		{"feedbacks by reviewId", c.feedback.DeleteFeedbackByReview},
	})
}

func (c *Cascade) run(ctx context.Context, kind, id string, steps []cascadeStep) error {
	for _, step := range steps {
		n, err := step.run(ctx, id)
		if err != nil {
			c.logger.Error("cascade step failed, remaining steps skipped",
				slog.String(kind, id),
				slog.String("step", step.name),
				slog.String("error", err.Error()),
			)
			return fmt.Errorf("cascade %s %s: %s: %w", kind, id, step.name, err)
		}
		c.logger.Debug("cascade step done",
			slog.String(kind, id),
			slog.String("step", step.name),
			slog.Int64("deleted", n),
		)
	}
	return nil
}
