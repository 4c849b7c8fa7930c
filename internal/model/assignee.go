package model

// Assignee is a reviewer-assignment edge: AssigneeID may review
// AssignedEmployeeID. The pair is unique and the two ids always differ.
type Assignee struct {
	ID                 string `json:"_id"                db:"id"`
	AssigneeID         string `json:"assigneeId"         db:"assignee_id"`
	AssignedEmployeeID string `json:"assignedEmployeeId" db:"assigned_employee_id"`
	Audit
}

type NewAssignee struct {
	AssigneeID         string `json:"assigneeId"         validate:"required"`
	AssignedEmployeeID string `json:"assignedEmployeeId" validate:"required"`
}
