package model

// Feedback is a comment attached to a review.
type Feedback struct {
	ID         string `json:"_id"        db:"id"`
	Feedback   string `json:"feedback"   db:"feedback"`
	ReviewID   string `json:"reviewId"   db:"review_id"`
	EmployeeID string `json:"employeeId" db:"employee_id"`
	Audit
}

type NewFeedback struct {
	Feedback   string `json:"feedback"   validate:"required"`
	ReviewID   string `json:"reviewId"   validate:"required"`
	EmployeeID string `json:"employeeId" validate:"required"`
}

type FeedbackPatch struct {
	Feedback   *string `json:"feedback"   validate:"omitnil,min=1"`
	ReviewID   *string `json:"reviewId"   validate:"omitnil,min=1"`
	EmployeeID *string `json:"employeeId" validate:"omitnil,min=1"`
	UpdatedBy  *string `json:"updatedBy"  validate:"omitnil,min=1"`
}

func (p FeedbackPatch) Apply(f *Feedback) {
	set(&f.Feedback, p.Feedback)
	set(&f.ReviewID, p.ReviewID)
	set(&f.EmployeeID, p.EmployeeID)
	set(&f.UpdatedBy, p.UpdatedBy)
}
