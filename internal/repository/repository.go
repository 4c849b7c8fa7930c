// Package repository declares the storage contracts the services depend on.
//
// Services only ever see these interfaces, so the SQLite implementation in
// repository/sqlite can be swapped (or faked in tests) without touching
// business rules. Single-record lookups return an error wrapping
// apperror.ErrNotFound when nothing matches; list and delete-many calls
// never do.
package repository

import (
	"context"

	"github.com/sakif/review-board/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUserName(ctx context.Context, userName string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id string) (model.DeleteResult, error)
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *model.Review) error
	GetReviewByID(ctx context.Context, id string) (*model.Review, error)
	UpdateReview(ctx context.Context, review *model.Review) error
	DeleteReview(ctx context.Context, id string) (model.DeleteResult, error)
	DeleteReviewsByEmployee(ctx context.Context, employeeID string) (int64, error)
	DeleteReviewsByReviewer(ctx context.Context, reviewerID string) (int64, error)
}

type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, feedback *model.Feedback) error
	GetFeedbackByID(ctx context.Context, id string) (*model.Feedback, error)
	ListFeedbackByReview(ctx context.Context, reviewID string) ([]model.Feedback, error)
	UpdateFeedback(ctx context.Context, feedback *model.Feedback) error
	DeleteFeedback(ctx context.Context, id string) (model.DeleteResult, error)
	DeleteFeedbackByReview(ctx context.Context, reviewID string) (int64, error)
	DeleteFeedbackByEmployee(ctx context.Context, employeeID string) (int64, error)
}

type AssigneeRepository interface {
	CreateAssignee(ctx context.Context, assignee *model.Assignee) error
	GetAssigneeByID(ctx context.Context, id string) (*model.Assignee, error)
	AssigneePairExists(ctx context.Context, assigneeID, assignedEmployeeID string) (bool, error)
	DeleteAssignee(ctx context.Context, id string) (model.DeleteResult, error)
	DeleteAssigneesByAssignee(ctx context.Context, assigneeID string) (int64, error)
	DeleteAssigneesByAssignedEmployee(ctx context.Context, employeeID string) (int64, error)
}

// ReadModel holds the cross-collection queries. They join records at read
// time; no references are stored or kept in sync.
type ReadModel interface {
	AssigneesOfEmployee(ctx context.Context, assignedEmployeeID string) ([]model.AssigneeWithInfo, error)
	EmployeesAssignedTo(ctx context.Context, assigneeID string) ([]model.AssignedEmployee, error)
	ReviewsOfEmployee(ctx context.Context, filter model.ReviewFilter) ([]model.ReviewView, error)
}
