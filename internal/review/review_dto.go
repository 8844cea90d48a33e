package review

type AddReviewRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	ReviewText string `json:"review_text" validate:"required"`
}

type ReviewResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	ReviewText string `json:"review_text"`
	CreatedAt  string `json:"created_at"`
}
