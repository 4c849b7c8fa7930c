package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/review-board/internal/apperror"
	"github.com/sakif/review-board/internal/model"
	"github.com/sakif/review-board/internal/repository"
)

type FeedbackService struct {
	feedback repository.FeedbackRepository
	logger   *slog.Logger
	now      Clock
}

func NewFeedbackService(feedback repository.FeedbackRepository, logger *slog.Logger) *FeedbackService {
	return &FeedbackService{
		feedback: feedback,
		logger:   logger,
		now:      utcNow,
	}
}

func (s *FeedbackService) Create(ctx context.Context, callerID string, in model.NewFeedback) (*model.Feedback, error) {
	if err := model.Validate(in); err != nil {
		return nil, err
	}

	f := &model.Feedback{
		Feedback:   in.Feedback,
		ReviewID:   in.ReviewID,
		EmployeeID: in.EmployeeID,
	}
	f.Stamp(callerID, s.now())

	if err := s.feedback.CreateFeedback(ctx, f); err != nil {
		return nil, fmt.Errorf("service/feedback: creating feedback: %w", err)
	}

	s.logger.Info("feedback created",
		slog.String("id", f.ID),
		slog.String("reviewId", f.ReviewID),
	)
	return f, nil
}

func (s *FeedbackService) ListByReview(ctx context.Context, reviewID string) ([]model.Feedback, error) {
	if reviewID == "" {
		return nil, apperror.Param("Missing review id parameter")
	}

	list, err := s.feedback.ListFeedbackByReview(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("service/feedback: listing feedback: %w", err)
	}
	return list, nil
}

func (s *FeedbackService) Get(ctx context.Context, id string) (*model.Feedback, error) {
	if id == "" {
		return nil, apperror.Param("Missing Id parameter")
	}
	return s.feedback.GetFeedbackByID(ctx, id)
}

func (s *FeedbackService) Update(ctx context.Context, id string, patch model.FeedbackPatch) (*model.Feedback, error) {
	if id == "" {
		return nil, apperror.Param("Missing Id parameter")
	}
	if err := model.Validate(patch); err != nil {
		return nil, err
	}

	f, err := s.feedback.GetFeedbackByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.Param("Feedback Not Found")
		}
		return nil, err
	}

	patch.Apply(f)

	if err := s.feedback.UpdateFeedback(ctx, f); err != nil {
		return nil, fmt.Errorf("service/feedback: updating %s: %w", id, err)
	}
	return f, nil
}

func (s *FeedbackService) Delete(ctx context.Context, id string) (model.DeleteResult, error) {
	if id == "" {
		return model.DeleteResult{}, apperror.Param("Missing Id parameter")
	}
	return s.feedback.DeleteFeedback(ctx, id)
}
