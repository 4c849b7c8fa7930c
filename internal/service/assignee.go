package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/review-board/internal/apperror"
	"github.com/sakif/review-board/internal/model"
	"github.com/sakif/review-board/internal/repository"
)

type AssigneeService struct {
	assignees repository.AssigneeRepository
	users     repository.UserRepository
	read      repository.ReadModel
	logger    *slog.Logger
	now       Clock
}

func NewAssigneeService(
	assignees repository.AssigneeRepository,
	users repository.UserRepository,
	read repository.ReadModel,
	logger *slog.Logger,
) *AssigneeService {
	return &AssigneeService{
		assignees: assignees,
		users:     users,
		read:      read,
		logger:    logger,
		now:       utcNow,
	}
}

// Create records that in.AssigneeID may review in.AssignedEmployeeID and
// returns the edge with the reviewer's profile attached.
func (s *AssigneeService) Create(ctx context.Context, callerID string, in model.NewAssignee) (*model.AssigneeWithInfo, error) {
	if err := model.Validate(in); err != nil {
		return nil, err
	}

	if in.AssigneeID == in.AssignedEmployeeID {
		return nil, apperror.ValidationFailed("assigneeId", "Assignee cannot assign to himself")
	}

	exists, err := s.assignees.AssigneePairExists(ctx, in.AssigneeID, in.AssignedEmployeeID)
	if err != nil {
		return nil, fmt.Errorf("service/assignee: checking pair: %w", err)
	}
	if exists {
		return nil, apperror.ValidationFailed("assigneeId", "That assignee is already assigned")
	}

	a := &model.Assignee{
		AssigneeID:         in.AssigneeID,
		AssignedEmployeeID: in.AssignedEmployeeID,
	}
	a.Stamp(callerID, s.now())

	if err := s.assignees.CreateAssignee(ctx, a); err != nil {
		return nil, fmt.Errorf("service/assignee: creating assignee: %w", err)
	}

	s.logger.Info("assignee created",
		slog.String("id", a.ID),
		slog.String("assigneeId", a.AssigneeID),
		slog.String("assignedEmployeeId", a.AssignedEmployeeID),
	)

	info := []model.User{}
	profile, err := s.users.GetUserByID(ctx, a.AssigneeID)
	switch {
	case err == nil:
		info = append(info, *profile)
	case !isNotFound(err):
		return nil, fmt.Errorf("service/assignee: loading assignee profile: %w", err)
	}

	return &model.AssigneeWithInfo{Assignee: *a, AssigneeInfo: info}, nil
}

// ListByEmployee returns who may review the given employee.
func (s *AssigneeService) ListByEmployee(ctx context.Context, assignedEmployeeID string) ([]model.AssigneeWithInfo, error) {
	if assignedEmployeeID == "" {
		return nil, apperror.Param("Missing assignedEmployee id parameter")
	}

	list, err := s.read.AssigneesOfEmployee(ctx, assignedEmployeeID)
	if err != nil {
		return nil, fmt.Errorf("service/assignee: listing assignees: %w", err)
	}
	return list, nil
}

// EmployeesOf returns the employees the given assignee may review.
func (s *AssigneeService) EmployeesOf(ctx context.Context, assigneeID string) ([]model.AssignedEmployee, error) {
	if assigneeID == "" {
		return nil, apperror.Param("Missing Assignee Id parameter")
	}

	list, err := s.read.EmployeesAssignedTo(ctx, assigneeID)
	if err != nil {
		return nil, fmt.Errorf("service/assignee: listing assigned employees: %w", err)
	}
	return list, nil
}

func (s *AssigneeService) Get(ctx context.Context, id string) (*model.Assignee, error) {
	if id == "" {
		return nil, apperror.Param("Missing Id parameter")
	}
	return s.assignees.GetAssigneeByID(ctx, id)
}

func (s *AssigneeService) Delete(ctx context.Context, id string) (model.DeleteResult, error) {
	if id == "" {
		return model.DeleteResult{}, apperror.Param("Missing Id parameter")
	}
	return s.assignees.DeleteAssignee(ctx, id)
}
