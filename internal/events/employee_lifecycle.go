package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

type EmployeeLifecycleEvent struct {
	EventType  string    `json:"event_type"` // employee_created | employee_deleted
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
