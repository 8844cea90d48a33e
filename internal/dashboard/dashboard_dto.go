package dashboard

type ActivityEntry struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

type SummaryResponse struct {
	EmployeeCount     int64           `json:"employee_count"`
	PendingLeaveCount int64           `json:"pending_leave_count"`
	AbsentTodayCount  int64           `json:"absent_today_count"`
	RecentActivity    []ActivityEntry `json:"recent_activity"`
}
