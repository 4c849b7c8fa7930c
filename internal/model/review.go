package model

// Review is an evaluation written about an employee. UpdatedBy is the
// reviewer whose name is shown on the review.
type Review struct {
	ID          string `json:"_id"         db:"id"`
	Description string `json:"description" db:"description"`
	EmployeeID  string `json:"employeeId"  db:"employee_id"`
	Audit
}

type NewReview struct {
	Description string `json:"description" validate:"required"`
	EmployeeID  string `json:"employeeId"  validate:"required"`
}

type ReviewPatch struct {
	Description *string `json:"description" validate:"omitnil,min=1"`
	EmployeeID  *string `json:"employeeId"  validate:"omitnil,min=1"`
	UpdatedBy   *string `json:"updatedBy"   validate:"omitnil,min=1"`
}

func (p ReviewPatch) Apply(r *Review) {
	set(&r.Description, p.Description)
	set(&r.EmployeeID, p.EmployeeID)
	set(&r.UpdatedBy, p.UpdatedBy)
}

// ReviewFilter selects the reviews of one employee, optionally narrowed to
// a single reviewer.
type ReviewFilter struct {
	EmployeeID string
	UpdatedBy  string
}
