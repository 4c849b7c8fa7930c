package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sakif/review-board/internal/apperror"
	"github.com/sakif/review-board/internal/auth"
	"github.com/sakif/review-board/internal/model"
)

// fakeStore is an in-memory implementation of every repository interface.
// Slices keep insertion order; failOn makes the named method return an
// error to simulate a store failure.
type fakeStore struct {
	users     []model.User
	reviews   []model.Review
	feedbacks []model.Feedback
	assignees []model.Assignee
	nextID    int
	failOn    map[string]error
	calls     []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{failOn: map[string]error{}}
}

func (f *fakeStore) call(name string) error {
	f.calls = append(f.calls, name)
	return f.failOn[name]
}

func (f *fakeStore) newID() string {
	f.nextID++
	return fmt.Sprintf("id-%03d", f.nextID)
}

// --- users ---

func (f *fakeStore) CreateUser(_ context.Context, u *model.User) error {
	if err := f.call("CreateUser"); err != nil {
		return err
	}
	u.ID = f.newID()
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	if err := f.call("GetUserByID"); err != nil {
		return nil, err
	}
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, apperror.NotFound("User not found")
}

func (f *fakeStore) GetUserByUserName(_ context.Context, name string) (*model.User, error) {
	if err := f.call("GetUserByUserName"); err != nil {
		return nil, err
	}
	for i := range f.users {
		if f.users[i].UserName == name {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, apperror.NotFound("User not found")
}

func (f *fakeStore) ListUsers(context.Context) ([]model.User, error) {
	if err := f.call("ListUsers"); err != nil {
		return nil, err
	}
	return append([]model.User{}, f.users...), nil
}

func (f *fakeStore) UpdateUser(_ context.Context, u *model.User) error {
	if err := f.call("UpdateUser"); err != nil {
		return err
	}
	for i := range f.users {
		if f.users[i].ID == u.ID {
			f.users[i] = *u
			return nil
		}
	}
	return apperror.NotFound("User not found")
}

func (f *fakeStore) DeleteUser(_ context.Context, id string) (model.DeleteResult, error) {
	if err := f.call("DeleteUser"); err != nil {
		return model.DeleteResult{}, err
	}
	n := len(f.users)
	f.users = filter(f.users, func(u model.User) bool { return u.ID != id })
	if len(f.users) == n {
		return model.DeleteResult{}, apperror.NotFound("User not found")
	}
	return model.NewDeleteResult(1), nil
}

// --- reviews ---

func (f *fakeStore) CreateReview(_ context.Context, r *model.Review) error {
	if err := f.call("CreateReview"); err != nil {
		return err
	}
	r.ID = f.newID()
	f.reviews = append(f.reviews, *r)
	return nil
}

func (f *fakeStore) GetReviewByID(_ context.Context, id string) (*model.Review, error) {
	if err := f.call("GetReviewByID"); err != nil {
		return nil, err
	}
	for i := range f.reviews {
		if f.reviews[i].ID == id {
			r := f.reviews[i]
			return &r, nil
		}
	}
	return nil, apperror.NotFound("Review not found")
}

func (f *fakeStore) UpdateReview(_ context.Context, r *model.Review) error {
	if err := f.call("UpdateReview"); err != nil {
		return err
	}
	for i := range f.reviews {
		if f.reviews[i].ID == r.ID {
			f.reviews[i] = *r
			return nil
		}
	}
	return apperror.NotFound("Review not found")
}

func (f *fakeStore) DeleteReview(_ context.Context, id string) (model.DeleteResult, error) {
	if err := f.call("DeleteReview"); err != nil {
		return model.DeleteResult{}, err
	}
	n := len(f.reviews)
	f.reviews = filter(f.reviews, func(r model.Review) bool { return r.ID != id })
	if len(f.reviews) == n {
		return model.DeleteResult{}, apperror.NotFound("Review not found")
	}
	return model.NewDeleteResult(1), nil
}

func (f *fakeStore) DeleteReviewsByEmployee(_ context.Context, id string) (int64, error) {
	if err := f.call("DeleteReviewsByEmployee"); err != nil {
		return 0, err
	}
	n := len(f.reviews)
	f.reviews = filter(f.reviews, func(r model.Review) bool { return r.EmployeeID != id })
	return int64(n - len(f.reviews)), nil
}

func (f *fakeStore) DeleteReviewsByReviewer(_ context.Context, id string) (int64, error) {
	if err := f.call("DeleteReviewsByReviewer"); err != nil {
		return 0, err
	}
	n := len(f.reviews)
	f.reviews = filter(f.reviews, func(r model.Review) bool { return r.UpdatedBy != id })
	return int64(n - len(f.reviews)), nil
}

// --- feedback ---

func (f *fakeStore) CreateFeedback(_ context.Context, fb *model.Feedback) error {
	if err := f.call("CreateFeedback"); err != nil {
		return err
	}
	fb.ID = f.newID()
	f.feedbacks = append(f.feedbacks, *fb)
	return nil
}

func (f *fakeStore) GetFeedbackByID(_ context.Context, id string) (*model.Feedback, error) {
	if err := f.call("GetFeedbackByID"); err != nil {
		return nil, err
	}
	for i := range f.feedbacks {
		if f.feedbacks[i].ID == id {
			fb := f.feedbacks[i]
			return &fb, nil
		}
	}
	return nil, apperror.NotFound("Feedback not found")
}

func (f *fakeStore) ListFeedbackByReview(_ context.Context, reviewID string) ([]model.Feedback, error) {
	if err := f.call("ListFeedbackByReview"); err != nil {
		return nil, err
	}
	return filter(f.feedbacks, func(fb model.Feedback) bool { return fb.ReviewID == reviewID }), nil
}

func (f *fakeStore) UpdateFeedback(_ context.Context, fb *model.Feedback) error {
	if err := f.call("UpdateFeedback"); err != nil {
		return err
	}
	for i := range f.feedbacks {
		if f.feedbacks[i].ID == fb.ID {
			f.feedbacks[i] = *fb
			return nil
		}
	}
	return apperror.NotFound("Feedback not found")
}

func (f *fakeStore) DeleteFeedback(_ context.Context, id string) (model.DeleteResult, error) {
	if err := f.call("DeleteFeedback"); err != nil {
		return model.DeleteResult{}, err
	}
	n := len(f.feedbacks)
	f.feedbacks = filter(f.feedbacks, func(fb model.Feedback) bool { return fb.ID != id })
	if len(f.feedbacks) == n {
		return model.DeleteResult{}, apperror.NotFound("Feedback not found")
	}
	return model.NewDeleteResult(1), nil
}

func (f *fakeStore) DeleteFeedbackByReview(_ context.Context, id string) (int64, error) {
	if err := f.call("DeleteFeedbackByReview"); err != nil {
		return 0, err
	}
	n := len(f.feedbacks)
	f.feedbacks = filter(f.feedbacks, func(fb model.Feedback) bool { return fb.ReviewID != id })
	return int64(n - len(f.feedbacks)), nil
}

func (f *fakeStore) DeleteFeedbackByEmployee(_ context.Context, id string) (int64, error) {
	if err := f.call("DeleteFeedbackByEmployee"); err != nil {
		return 0, err
	}
	n := len(f.feedbacks)
	f.feedbacks = filter(f.feedbacks, func(fb model.Feedback) bool { return fb.EmployeeID != id })
	return int64(n - len(f.feedbacks)), nil
}

// --- assignees ---

func (f *fakeStore) CreateAssignee(_ context.Context, a *model.Assignee) error {
	if err := f.call("CreateAssignee"); err != nil {
		return err
	}
	a.ID = f.newID()
	f.assignees = append(f.assignees, *a)
	return nil
}

func (f *fakeStore) GetAssigneeByID(_ context.Context, id string) (*model.Assignee, error) {
	if err := f.call("GetAssigneeByID"); err != nil {
		return nil, err
	}
	for i := range f.assignees {
		if f.assignees[i].ID == id {
			a := f.assignees[i]
			return &a, nil
		}
	}
	return nil, apperror.NotFound("Assignee not found")
}

func (f *fakeStore) AssigneePairExists(_ context.Context, assigneeID, employeeID string) (bool, error) {
	if err := f.call("AssigneePairExists"); err != nil {
		return false, err
	}
	for _, a := range f.assignees {
		if a.AssigneeID == assigneeID && a.AssignedEmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) DeleteAssignee(_ context.Context, id string) (model.DeleteResult, error) {
	if err := f.call("DeleteAssignee"); err != nil {
		return model.DeleteResult{}, err
	}
	n := len(f.assignees)
	f.assignees = filter(f.assignees, func(a model.Assignee) bool { return a.ID != id })
	if len(f.assignees) == n {
		return model.DeleteResult{}, apperror.NotFound("Assignee not found")
	}
	return model.NewDeleteResult(1), nil
}

func (f *fakeStore) DeleteAssigneesByAssignee(_ context.Context, id string) (int64, error) {
	if err := f.call("DeleteAssigneesByAssignee"); err != nil {
		return 0, err
	}
	n := len(f.assignees)
	f.assignees = filter(f.assignees, func(a model.Assignee) bool { return a.AssigneeID != id })
	return int64(n - len(f.assignees)), nil
}

func (f *fakeStore) DeleteAssigneesByAssignedEmployee(_ context.Context, id string) (int64, error) {
	if err := f.call("DeleteAssigneesByAssignedEmployee"); err != nil {
		return 0, err
	}
	n := len(f.assignees)
	f.assignees = filter(f.assignees, func(a model.Assignee) bool { return a.AssignedEmployeeID != id })
	return int64(n - len(f.assignees)), nil
}

// --- read model ---

func (f *fakeStore) AssigneesOfEmployee(ctx context.Context, employeeID string) ([]model.AssigneeWithInfo, error) {
	if err := f.call("AssigneesOfEmployee"); err != nil {
		return nil, err
	}
	out := []model.AssigneeWithInfo{}
	for _, a := range f.assignees {
		if a.AssignedEmployeeID != employeeID {
			continue
		}
		info := []model.User{}
		if u, err := f.GetUserByID(ctx, a.AssigneeID); err == nil {
			info = append(info, *u)
		}
		out = append(out, model.AssigneeWithInfo{Assignee: a, AssigneeInfo: info})
	}
	return out, nil
}

func (f *fakeStore) EmployeesAssignedTo(_ context.Context, assigneeID string) ([]model.AssignedEmployee, error) {
	if err := f.call("EmployeesAssignedTo"); err != nil {
		return nil, err
	}
	out := []model.AssignedEmployee{}
	for _, a := range f.assignees {
		if a.AssigneeID == assigneeID {
			out = append(out, model.AssignedEmployee{
				ID: a.AssignedEmployeeID, AssigneeID: a.AssigneeID, AssignedEmployeeID: a.AssignedEmployeeID,
			})
		}
	}
	return out, nil
}

func (f *fakeStore) ReviewsOfEmployee(_ context.Context, rf model.ReviewFilter) ([]model.ReviewView, error) {
	if err := f.call("ReviewsOfEmployee"); err != nil {
		return nil, err
	}
	out := []model.ReviewView{}
	for _, r := range f.reviews {
		if r.EmployeeID != rf.EmployeeID || (rf.UpdatedBy != "" && r.UpdatedBy != rf.UpdatedBy) {
			continue
		}
		out = append(out, model.ReviewView{ID: r.ID, RID: r.ID, EmployeeID: r.EmployeeID, UpdatedBy: r.UpdatedBy})
	}
	return out, nil
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// =========================================================================
// HELPERS
// =========================================================================

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type services struct {
	store     *fakeStore
	users     *UserService
	reviews   *ReviewService
	feedback  *FeedbackService
	assignees *AssigneeService
	tokens    *auth.TokenService
}

func newTestServices(t *testing.T) *services {
	t.Helper()
	store := newFakeStore()
	logger := testLogger()

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	cascade := NewCascade(store, store, store, logger)
	s := &services{
		store:     store,
		users:     NewUserService(store, cascade, tokens, auth.NewPlainPasswordService(), logger),
		reviews:   NewReviewService(store, store, cascade, logger),
		feedback:  NewFeedbackService(store, logger),
		assignees: NewAssigneeService(store, store, store, logger),
		tokens:    tokens,
	}
	clock := func() time.Time { return fixedNow }
	s.users.now = clock
	s.reviews.now = clock
	s.feedback.now = clock
	s.assignees.now = clock
	return s
}

func (s *services) register(t *testing.T, userName, first, last string) *model.User {
	t.Helper()
	u, err := s.users.Register(context.Background(), model.NewUser{
		UserName: userName, Password: "pw-" + userName,
		FirstName: first, LastName: last, Sex: "female", Role: "employee",
	})
	if err != nil {
		t.Fatalf("Register(%q): %v", userName, err)
	}
	return u
}

func strPtr(s string) *string { return &s }
