package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/review-board/internal/model"
)

func TestAssigneesOfEmployee(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := createTestUser(t, db, "alice", "Alice", "Smith")
	b := createTestUser(t, db, "bob", "Bob", "Jones")
	createTestAssignee(t, db, b.ID, a.ID)
	createTestAssignee(t, db, "ghost", a.ID)
	createTestAssignee(t, db, a.ID, b.ID)

	got, err := db.AssigneesOfEmployee(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, b.ID, got[0].AssigneeID)
	require.Len(t, got[0].AssigneeInfo, 1)
	assert.Equal(t, "bob", got[0].AssigneeInfo[0].UserName)
	assert.Empty(t, got[0].AssigneeInfo[0].Password, "joined profile must not carry a password")

	assert.Equal(t, "ghost", got[1].AssigneeID)
	assert.NotNil(t, got[1].AssigneeInfo)
	assert.Empty(t, got[1].AssigneeInfo)

	none, err := db.AssigneesOfEmployee(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEmployeesAssignedTo(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	boss := createTestUser(t, db, "boss", "Big", "Boss")
	emp := createTestUser(t, db, "emp", "Eve", "Worker")
	edge := createTestAssignee(t, db, boss.ID, emp.ID)
	createTestAssignee(t, db, boss.ID, "departed")

	got, err := db.EmployeesAssignedTo(ctx, boss.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	merged := got[0]
	assert.Equal(t, emp.ID, merged.ID, "id is forced to the employee id")
	assert.NotEqual(t, edge.ID, merged.ID)
	assert.Equal(t, boss.ID, merged.AssigneeID)
	assert.Equal(t, "emp", merged.UserName)
	assert.Equal(t, "Eve", merged.FirstName)
	assert.Equal(t, emp.CreatedBy, merged.CreatedBy, "profile fields win on conflict")

	orphan := got[1]
	assert.Equal(t, "departed", orphan.ID)
	assert.Empty(t, orphan.UserName)
	assert.Equal(t, "departed", orphan.CreatedBy, "edge fields kept when the employee is missing")
}

func TestReviewsOfEmployee(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	emp := createTestUser(t, db, "emp", "Eve", "Worker")
	rev := createTestUser(t, db, "rev", "Rita", "Reviewer")
	other := createTestUser(t, db, "other", "Otto", "Other")

	r1 := createTestReview(t, db, emp.ID, rev.ID)
	createTestFeedback(t, db, r1.ID, emp.ID, "first")
	createTestFeedback(t, db, r1.ID, emp.ID, "second")
	r2 := createTestReview(t, db, emp.ID, other.ID)
	createTestReview(t, db, emp.ID, "gone")
	createTestReview(t, db, other.ID, rev.ID)

	all, err := db.ReviewsOfEmployee(ctx, model.ReviewFilter{EmployeeID: emp.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)

	first := all[0]
	assert.Equal(t, r1.ID, first.ID)
	assert.Equal(t, r1.ID, first.RID)
	require.Len(t, first.Feedbacks, 2)
	assert.Equal(t, "first", first.Feedbacks[0].Feedback)
	require.NotNil(t, first.ReviewBy)
	assert.Equal(t, "Rita Reviewer", *first.ReviewBy)

	assert.Equal(t, r2.ID, all[1].ID)
	assert.NotNil(t, all[1].Feedbacks)
	assert.Empty(t, all[1].Feedbacks)

	assert.Nil(t, all[2].ReviewBy, "missing reviewer has no name")

	byOther, err := db.ReviewsOfEmployee(ctx, model.ReviewFilter{EmployeeID: emp.ID, UpdatedBy: other.ID})
	require.NoError(t, err)
	require.Len(t, byOther, 1)
	assert.Equal(t, r2.ID, byOther[0].ID)
	require.NotNil(t, byOther[0].ReviewBy)
	assert.Equal(t, "Otto Other", *byOther[0].ReviewBy)
}
