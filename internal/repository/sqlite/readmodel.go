package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sakif/review-board/internal/model"
	"github.com/sakif/review-board/internal/repository"
)

var _ repository.ReadModel = (*DB)(nil)

// joinedUser is a users row seen through a LEFT JOIN: every column is NULL
// when the referenced user does not exist.
type joinedUser struct {
	ID          sql.NullString `db:"id"`
	UserName    sql.NullString `db:"user_name"`
	FirstName   sql.NullString `db:"first_name"`
	LastName    sql.NullString `db:"last_name"`
	Sex         sql.NullString `db:"sex"`
	Role        sql.NullString `db:"role"`
	CreatedBy   sql.NullString `db:"created_by"`
	CreatedDate sql.NullTime   `db:"created_date"`
	UpdatedBy   sql.NullString `db:"updated_by"`
	UpdatedDate sql.NullTime   `db:"updated_date"`
}

// joinedUserColumns selects u.* under "u.<column>" aliases so sqlx can fill
// a joinedUser field tagged db:"u".
const joinedUserColumns = `u.id AS "u.id", u.user_name AS "u.user_name", u.first_name AS "u.first_name",
	u.last_name AS "u.last_name", u.sex AS "u.sex", u.role AS "u.role",
	u.created_by AS "u.created_by", u.created_date AS "u.created_date",
	u.updated_by AS "u.updated_by", u.updated_date AS "u.updated_date"`

func (j joinedUser) found() bool {
	return j.ID.Valid
}

// user converts the joined row to a profile. The password column is never
// selected, so the result carries none.
func (j joinedUser) user() model.User {
	return model.User{
		ID:        j.ID.String,
		UserName:  j.UserName.String,
		FirstName: j.FirstName.String,
		LastName:  j.LastName.String,
		Sex:       j.Sex.String,
		Role:      j.Role.String,
		Audit: model.Audit{
			CreatedBy:   j.CreatedBy.String,
			CreatedDate: j.CreatedDate.Time,
			UpdatedBy:   j.UpdatedBy.String,
			UpdatedDate: j.UpdatedDate.Time,
		},
	}
}

type assigneeRow struct {
	model.Assignee
	User joinedUser `db:"u"`
}

// AssigneesOfEmployee lists the edges pointing at an employee, each with
// the reviewer's profile attached as a zero- or one-element list.
func (db *DB) AssigneesOfEmployee(ctx context.Context, assignedEmployeeID string) ([]model.AssigneeWithInfo, error) {
	var rows []assigneeRow
	err := db.conn.SelectContext(ctx, &rows,
		`SELECT a.id, a.assignee_id, a.assigned_employee_id,
		        a.created_by, a.created_date, a.updated_by, a.updated_date,
		        `+joinedUserColumns+`
		 FROM assignees a
		 LEFT JOIN users u ON u.id = a.assignee_id
		 WHERE a.assigned_employee_id = ?
		 ORDER BY a.rowid`,
		assignedEmployeeID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing assignees of %s: %w", assignedEmployeeID, err)
	}

	out := make([]model.AssigneeWithInfo, 0, len(rows))
	for _, r := range rows {
		info := []model.User{}
		if r.User.found() {
			info = append(info, r.User.user())
		}
		out = append(out, model.AssigneeWithInfo{Assignee: r.Assignee, AssigneeInfo: info})
	}
	return out, nil
}

// EmployeesAssignedTo lists the employees an assignee may review. Each
// edge is merged with the employee's profile; the result id is always the
// employee id.
func (db *DB) EmployeesAssignedTo(ctx context.Context, assigneeID string) ([]model.AssignedEmployee, error) {
	var rows []assigneeRow
	err := db.conn.SelectContext(ctx, &rows,
		`SELECT a.id, a.assignee_id, a.assigned_employee_id,
		        a.created_by, a.created_date, a.updated_by, a.updated_date,
		        `+joinedUserColumns+`
		 FROM assignees a
		 LEFT JOIN users u ON u.id = a.assigned_employee_id
		 WHERE a.assignee_id = ?
		 ORDER BY a.rowid`,
		assigneeID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing employees assigned to %s: %w", assigneeID, err)
	}

	out := make([]model.AssignedEmployee, 0, len(rows))
	for _, r := range rows {
		e := model.AssignedEmployee{
			ID:                 r.AssignedEmployeeID,
			AssigneeID:         r.AssigneeID,
			AssignedEmployeeID: r.AssignedEmployeeID,
			Audit:              r.Assignee.Audit,
		}
		if r.User.found() {
			u := r.User.user()
			e.UserName = u.UserName
			e.FirstName = u.FirstName
			e.LastName = u.LastName
			e.Sex = u.Sex
			e.Role = u.Role
			e.Audit = u.Audit
		}
		out = append(out, e)
	}
	return out, nil
}

type reviewRow struct {
	model.Review
	User joinedUser `db:"u"`
}

// ReviewsOfEmployee lists an employee's reviews, optionally only those by
// one reviewer, each with its feedback and the reviewer's display name.
func (db *DB) ReviewsOfEmployee(ctx context.Context, filter model.ReviewFilter) ([]model.ReviewView, error) {
	query := `SELECT r.id, r.description, r.employee_id,
	                 r.created_by, r.created_date, r.updated_by, r.updated_date,
	                 ` + joinedUserColumns + `
	          FROM reviews r
	          LEFT JOIN users u ON u.id = r.updated_by
	          WHERE r.employee_id = ?`
	args := []any{filter.EmployeeID}
	if filter.UpdatedBy != "" {
		query += ` AND r.updated_by = ?`
		args = append(args, filter.UpdatedBy)
	}
	query += ` ORDER BY r.rowid`

	var rows []reviewRow
	if err := db.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("sqlite: listing reviews of %s: %w", filter.EmployeeID, err)
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	byReview, err := db.feedbackForReviews(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.ReviewView, 0, len(rows))
	for _, r := range rows {
		v := model.ReviewView{
			ID:          r.ID,
			CreatedBy:   r.CreatedBy,
			CreatedDate: r.CreatedDate,
			Description: r.Description,
			EmployeeID:  r.EmployeeID,
			Feedbacks:   byReview[r.ID],
			RID:         r.ID,
			UpdatedBy:   r.UpdatedBy,
			UpdatedDate: r.UpdatedDate,
		}
		if v.Feedbacks == nil {
			v.Feedbacks = []model.Feedback{}
		}
		if r.User.found() {
			u := r.User.user()
			name := u.FullName()
			v.ReviewBy = &name
		}
		out = append(out, v)
	}
	return out, nil
}

// feedbackForReviews loads the feedback of several reviews in one query,
// grouped by review id.
func (db *DB) feedbackForReviews(ctx context.Context, reviewIDs []string) (map[string][]model.Feedback, error) {
	grouped := make(map[string][]model.Feedback, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+feedbackColumns+` FROM feedbacks WHERE review_id IN (?) ORDER BY rowid`, reviewIDs)
	if err != nil {
		return nil, fmt.Errorf("sqlite: building feedback query: %w", err)
	}

	var feedbacks []model.Feedback
	if err := db.conn.SelectContext(ctx, &feedbacks, db.conn.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("sqlite: loading feedback for %d reviews: %w", len(reviewIDs), err)
	}

	for _, f := range feedbacks {
		grouped[f.ReviewID] = append(grouped[f.ReviewID], f)
	}
	return grouped, nil
}
