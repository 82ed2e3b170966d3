package dashboard

import "github.com/frahmantamala/attendance-tracker/internal/attendance"

type EmployeeDashboardResponse struct {
	TodayStatus      *attendance.TodayStatusResponse `json:"todayStatus"`
	MonthlySummary   *attendance.Summary             `json:"monthlySummary"`
	RecentAttendance []attendance.RecordResponse     `json:"recentAttendance"`
}

type AbsentEmployee struct {
	Name       string `json:"name"`
	EmployeeID string `json:"employeeId"`
}

type ManagerDashboardResponse struct {
	TotalEmployees  int64            `json:"totalEmployees"`
	Present         int              `json:"present"`
	Late            int              `json:"late"`
	Absent          int64            `json:"absent"`
	AbsentEmployees []AbsentEmployee `json:"absentEmployees"`
}
