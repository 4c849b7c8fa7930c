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

var _ repository.AssigneeRepository = (*DB)(nil)

const assigneeColumns = `id, assignee_id, assigned_employee_id, created_by, created_date, updated_by, updated_date`

func (db *DB) CreateAssignee(ctx context.Context, assignee *model.Assignee) error {
	assignee.ID = xid.New().String()

	_, err := db.conn.NamedExecContext(ctx,
		`INSERT INTO assignees (`+assigneeColumns+`)
		 VALUES (:id, :assignee_id, :assigned_employee_id, :created_by, :created_date, :updated_by, :updated_date)`,
		assignee,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting assignee %s -> %s: %w",
			assignee.AssigneeID, assignee.AssignedEmployeeID, err)
	}
	return nil
}

func (db *DB) GetAssigneeByID(ctx context.Context, id string) (*model.Assignee, error) {
	if err := checkID("assignee", id); err != nil {
		return nil, err
	}

	var a model.Assignee
	err := db.conn.GetContext(ctx, &a, `SELECT `+assigneeColumns+` FROM assignees WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Assignee not found")
		}
		return nil, fmt.Errorf("sqlite: getting assignee %s: %w", id, err)
	}
	return &a, nil
}

func (db *DB) AssigneePairExists(ctx context.Context, assigneeID, assignedEmployeeID string) (bool, error) {
	var exists bool
	err := db.conn.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM assignees WHERE assignee_id = ? AND assigned_employee_id = ?)`,
		assigneeID, assignedEmployeeID,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking assignee pair %s -> %s: %w", assigneeID, assignedEmployeeID, err)
	}
	return exists, nil
}

func (db *DB) DeleteAssignee(ctx context.Context, id string) (model.DeleteResult, error) {
	return db.deleteByID(ctx, "assignees", "assignee", id, "Assignee not found")
}

func (db *DB) DeleteAssigneesByAssignee(ctx context.Context, assigneeID string) (int64, error) {
	return db.deleteWhere(ctx, "assignees", "assignee_id", assigneeID)
}

func (db *DB) DeleteAssigneesByAssignedEmployee(ctx context.Context, employeeID string) (int64, error) {
	return db.deleteWhere(ctx, "assignees", "assigned_employee_id", employeeID)
}
