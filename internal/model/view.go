package model

import "time"

// Read-model shapes. These are produced by joining records at query time;
// nothing here is stored.

// AssigneeWithInfo is an assignee edge with the reviewer's profile attached
// as a list of at most one element (empty when the user no longer exists).
type AssigneeWithInfo struct {
	Assignee
	AssigneeInfo []User `json:"assigneeInfo"`
}

// AssignedEmployee is an assignee edge merged with the assigned employee's
// profile. ID is always the employee id. Profile fields win over the edge's
// own fields when the employee exists.
type AssignedEmployee struct {
	ID                 string `json:"_id"`
	AssigneeID         string `json:"assigneeId"`
	AssignedEmployeeID string `json:"assignedEmployeeId"`
	UserName           string `json:"userName,omitempty"`
	FirstName          string `json:"firstName,omitempty"`
	LastName           string `json:"lastName,omitempty"`
	Sex                string `json:"sex,omitempty"`
	Role               string `json:"role,omitempty"`
	Audit
}

// ReviewView is a review with its feedback and the reviewer's display name.
// ReviewBy is nil when the reviewer no longer exists.
type ReviewView struct {
	ID          string     `json:"_id"`
	CreatedBy   string     `json:"createdBy"`
	CreatedDate time.Time  `json:"createdDate"`
	Description string     `json:"description"`
	EmployeeID  string     `json:"employeeId"`
	Feedbacks   []Feedback `json:"feedbacks"`
	RID         string     `json:"rid"`
	UpdatedBy   string     `json:"updatedBy"`
	UpdatedDate time.Time  `json:"updatedDate"`
	ReviewBy    *string    `json:"reviewBy"`
}

// DeleteResult reports the outcome of a single-record delete.
type DeleteResult struct {
	N            int64 `json:"n"`
	OK           int   `json:"ok"`
	DeletedCount int64 `json:"deletedCount"`
}

// NewDeleteResult builds the result for n removed records.
func NewDeleteResult(n int64) DeleteResult {
	return DeleteResult{N: n, OK: 1, DeletedCount: n}
}
