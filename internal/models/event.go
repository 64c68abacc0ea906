package models

type ExamSubmittedEvent struct {
	ExamID    int64 `json:"exam_id"`
	StudentID int64 `json:"student_id"`
	Score     int   `json:"score"`
	Timestamp int64 `json:"timestamp"`
}

type AssignmentUploadedEvent struct {
	AssignmentID int64  `json:"assignment_id"`
	Subject      string `json:"subject"`
	TeacherName  string `json:"teacher_name"`
	FileName     string `json:"filename"`
	Checksum     string `json:"checksum"`
	Timestamp    int64  `json:"timestamp"`
}
