package models

// Score tiers used on the teacher dashboard.
const (
	ExcellentMinScore = 80
	AverageMinScore   = 40
)

type DashboardStats struct {
	TotalStudents  int `json:"total_students"`
	ActiveStudents int `json:"active_students"`
}

type ProgressChart struct {
	Excellent int `json:"excellent"`
	Average   int `json:"average"`
	NeedsHelp int `json:"needs_help"`
}

type Dashboard struct {
	Teacher       TeacherResponse   `json:"teacher"`
	Stats         DashboardStats    `json:"stats"`
	ProgressChart ProgressChart     `json:"progress_chart"`
	ClassChart    map[string]int    `json:"class_chart"`
	Students      []StudentResponse `json:"students"`
}
