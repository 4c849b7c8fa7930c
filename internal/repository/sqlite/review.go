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

var _ repository.ReviewRepository = (*DB)(nil)

const reviewColumns = `id, description, employee_id, created_by, created_date, updated_by, updated_date`

func (db *DB) CreateReview(ctx context.Context, review *model.Review) error {
	review.ID = xid.New().String()

	_, err := db.conn.NamedExecContext(ctx,
		`INSERT INTO reviews (`+reviewColumns+`)
		 VALUES (:id, :description, :employee_id, :created_by, :created_date, :updated_by, :updated_date)`,
		review,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting review for employee %s: %w", review.EmployeeID, err)
	}
	return nil
}

func (db *DB) GetReviewByID(ctx context.Context, id string) (*model.Review, error) {
	if err := checkID("review", id); err != nil {
		return nil, err
	}

	var r model.Review
	err := db.conn.GetContext(ctx, &r, `SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Review not found")
		}
		return nil, fmt.Errorf("sqlite: getting review %s: %w", id, err)
	}
	return &r, nil
}

func (db *DB) UpdateReview(ctx context.Context, review *model.Review) error {
	if err := checkID("review", review.ID); err != nil {
		return err
	}

	res, err := db.conn.NamedExecContext(ctx,
		`UPDATE reviews SET description = :description, employee_id = :employee_id,
		        updated_by = :updated_by, updated_date = :updated_date
		 WHERE id = :id`,
		review,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating review %s: %w", review.ID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NotFound("Review not found")
	}
	return nil
}

func (db *DB) DeleteReview(ctx context.Context, id string) (model.DeleteResult, error) {
	return db.deleteByID(ctx, "reviews", "review", id, "Review not found")
}

func (db *DB) DeleteReviewsByEmployee(ctx context.Context, employeeID string) (int64, error) {
	return db.deleteWhere(ctx, "reviews", "employee_id", employeeID)
}

func (db *DB) DeleteReviewsByReviewer(ctx context.Context, reviewerID string) (int64, error) {
	return db.deleteWhere(ctx, "reviews", "updated_by", reviewerID)
}
