package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/review-board/internal/apperror"
)

func TestReviewCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	r := createTestReview(t, db, "emp", "rev")

	got, err := db.GetReviewByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "solid quarter", got.Description)
	assert.Equal(t, "rev", got.UpdatedBy)

	got.Description = "great quarter"
	require.NoError(t, db.UpdateReview(ctx, got))

	again, err := db.GetReviewByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "great quarter", again.Description)
	assert.Equal(t, "emp", again.EmployeeID)

	res, err := db.DeleteReview(ctx, r.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.N)

	_, err = db.GetReviewByID(ctx, r.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestDeleteReviewsByEmployeeAndReviewer(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createTestReview(t, db, "emp1", "rev1")
	createTestReview(t, db, "emp1", "rev2")
	createTestReview(t, db, "emp2", "rev1")
	keep := createTestReview(t, db, "emp3", "rev3")

	n, err := db.DeleteReviewsByEmployee(ctx, "emp1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = db.DeleteReviewsByReviewer(ctx, "rev1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = db.DeleteReviewsByReviewer(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = db.GetReviewByID(ctx, keep.ID)
	assert.NoError(t, err)
}

func TestFeedbackCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := createTestFeedback(t, db, "r1", "emp", "nice")
	createTestFeedback(t, db, "r1", "emp", "again")
	createTestFeedback(t, db, "r2", "other", "elsewhere")

	list, err := db.ListFeedbackByReview(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "nice", list[0].Feedback)

	none, err := db.ListFeedbackByReview(ctx, "unknown")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	f.Feedback = "very nice"
	require.NoError(t, db.UpdateFeedback(ctx, f))
	got, err := db.GetFeedbackByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "very nice", got.Feedback)

	_, err = db.GetFeedbackByID(ctx, xid.New().String())
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	n, err := db.DeleteFeedbackByReview(ctx, "r1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = db.DeleteFeedbackByEmployee(ctx, "other")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = db.DeleteFeedback(ctx, f.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestAssigneeCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := createTestAssignee(t, db, "boss", "emp")

	got, err := db.GetAssigneeByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "boss", got.AssigneeID)

	exists, err := db.AssigneePairExists(ctx, "boss", "emp")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = db.AssigneePairExists(ctx, "emp", "boss")
	require.NoError(t, err)
	assert.False(t, exists, "pairs are directed")

	createTestAssignee(t, db, "boss", "emp2")
	createTestAssignee(t, db, "peer", "emp")

	n, err := db.DeleteAssigneesByAssignee(ctx, "boss")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = db.DeleteAssigneesByAssignedEmployee(ctx, "emp")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = db.DeleteAssignee(ctx, a.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
