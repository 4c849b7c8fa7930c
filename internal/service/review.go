package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/review-board/internal/apperror"
	"github.com/sakif/review-board/internal/model"
	"github.com/sakif/review-board/internal/repository"
)

type ReviewService struct {
	reviews repository.ReviewRepository
	read    repository.ReadModel
	cascade *Cascade
	logger  *slog.Logger
	now     Clock
}

func NewReviewService(
	reviews repository.ReviewRepository,
	read repository.ReadModel,
	cascade *Cascade,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		read:    read,
		cascade: cascade,
		logger:  logger,
		now:     utcNow,
	}
}

// Create stores a review written by callerID.
func (s *ReviewService) Create(ctx context.Context, callerID string, in model.NewReview) (*model.Review, error) {
	if err := model.Validate(in); err != nil {
		return nil, err
	}

	review := &model.Review{
		Description: in.Description,
		EmployeeID:  in.EmployeeID,
	}
	review.Stamp(callerID, s.now())

	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("service/review: creating review: %w", err)
	}

	s.logger.Info("review created",
		slog.String("id", review.ID),
		slog.String("employeeId", review.EmployeeID),
	)
	return review, nil
}

// List returns an employee's reviews with feedback and reviewer names.
func (s *ReviewService) List(ctx context.Context, filter model.ReviewFilter) ([]model.ReviewView, error) {
	if filter.EmployeeID == "" {
		return nil, apperror.Param("Missing employee id parameter")
	}

	views, err := s.read.ReviewsOfEmployee(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service/review: listing reviews: %w", err)
	}
	return views, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (*model.Review, error) {
	if id == "" {
		return nil, apperror.Param("Missing Id parameter")
	}
	return s.reviews.GetReviewByID(ctx, id)
}

func (s *ReviewService) Update(ctx context.Context, id string, patch model.ReviewPatch) (*model.Review, error) {
	if id == "" {
		return nil, apperror.Param("Missing Id parameter")
	}
	if err := model.Validate(patch); err != nil {
		return nil, err
	}

	review, err := s.reviews.GetReviewByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.Param("Review Not Found")
		}
		return nil, err
	}

	patch.Apply(review)

	if err := s.reviews.UpdateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("service/review: updating %s: %w", id, err)
	}
	return review, nil
}

// Delete removes a review and then its feedback.
func (s *ReviewService) Delete(ctx context.Context, id string) (model.DeleteResult, error) {
	if id == "" {
		return model.DeleteResult{}, apperror.Param("Missing Id parameter")
	}

	res, err := s.reviews.DeleteReview(ctx, id)
	if err != nil {
		return model.DeleteResult{}, err
	}

	if err := s.cascade.ReviewDeleted(ctx, id); err != nil {
		return model.DeleteResult{}, err
	}

	s.logger.Info("review deleted", slog.String("id", id))
	return res, nil
}
