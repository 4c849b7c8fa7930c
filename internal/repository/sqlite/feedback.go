package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/review-board/internal/apperror"
	"github.com/sakif/review-board/internal/model"
	"github.com/sakif/review-board/internal/repository"
)

var _ repository.FeedbackRepository = (*DB)(nil)

const feedbackColumns = `id, feedback, review_id, employee_id, created_by, created_date, updated_by, updated_date`

func (db *DB) CreateFeedback(ctx context.Context, feedback *model.Feedback) error {
	feedback.ID = xid.New().String()

	_, err := db.conn.NamedExecContext(ctx,
		`INSERT INTO feedbacks (`+feedbackColumns+`)
		 VALUES (:id, :feedback, :review_id, :employee_id, :created_by, :created_date, :updated_by, :updated_date)`,
		feedback,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting feedback for review %s: %w", feedback.ReviewID, err)
	}
	return nil
}

func (db *DB) GetFeedbackByID(ctx context.Context, id string) (*model.Feedback, error) {
	if err := checkID("feedback", id); err != nil {
		return nil, err
	}

	var f model.Feedback
	err := db.conn.GetContext(ctx, &f, `SELECT `+feedbackColumns+` FROM feedbacks WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Feedback not found")
		}
		return nil, fmt.Errorf("sqlite: getting feedback %s: %w", id, err)
	}
	return &f, nil
}

// ListFeedbackByReview returns the review's feedback in insertion order;
// an unknown review id yields an empty list.
func (db *DB) ListFeedbackByReview(ctx context.Context, reviewID string) ([]model.Feedback, error) {
	feedbacks := []model.Feedback{}
	err := db.conn.SelectContext(ctx, &feedbacks,
		`SELECT `+feedbackColumns+` FROM feedbacks WHERE review_id = ? ORDER BY rowid`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing feedback for review %s: %w", reviewID, err)
	}
	return feedbacks, nil
}

func (db *DB) UpdateFeedback(ctx context.Context, feedback *model.Feedback) error {
	if err := checkID("feedback", feedback.ID); err != nil {
		return err
	}

	res, err := db.conn.NamedExecContext(ctx,
		`UPDATE feedbacks SET feedback = :feedback, review_id = :review_id, employee_id = :employee_id,
		        updated_by = :updated_by, updated_date = :updated_date
		 WHERE id = :id`,
		feedback,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating feedback %s: %w", feedback.ID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NotFound("Feedback not found")
	}
	return nil
}

func (db *DB) DeleteFeedback(ctx context.Context, id string) (model.DeleteResult, error) {
	return db.deleteByID(ctx, "feedbacks", "feedback", id, "Feedback not found")
}

func (db *DB) DeleteFeedbackByReview(ctx context.Context, reviewID string) (int64, error) {
	return db.deleteWhere(ctx, "feedbacks", "review_id", reviewID)
}

func (db *DB) DeleteFeedbackByEmployee(ctx context.Context, employeeID string) (int64, error) {
	return db.deleteWhere(ctx, "feedbacks", "employee_id", employeeID)
}
