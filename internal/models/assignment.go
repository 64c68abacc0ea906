package models

import (
	"strings"
	"time"
)

const AssignmentDateLayout = "2006-01-02 15:04"

// Assignment.TeacherName is a display name typed by the uploader, not a
// reference to the teachers table.
type Assignment struct {
	ID           int64     `json:"id" db:"id"`
	Subject      string    `json:"subject" db:"subject"`
	FileName     string    `json:"filename" db:"filename"`
	OriginalName string    `json:"original_name" db:"original_name"`
	TeacherName  string    `json:"teacher_name" db:"teacher_name"`
	Checksum     string    `json:"checksum" db:"checksum"`
	FileSize     int64     `json:"file_size" db:"file_size"`
	CreatedAt    time.Time `json:"timestamp" db:"created_at"`
}

type AssignmentResponse struct {
	ID          int64  `json:"id"`
	Subject     string `json:"subject"`
	TeacherName string `json:"teacher_name"`
	Date        string `json:"date"`
	URL         string `json:"url"`
}

// Response builds the public representation; baseURL is the externally
// reachable origin of this server.
func (a *Assignment) Response(baseURL string) AssignmentResponse {
	return AssignmentResponse{
		ID:          a.ID,
		Subject:     a.Subject,
		TeacherName: a.TeacherName,
		Date:        a.CreatedAt.UTC().Format(AssignmentDateLayout),
		URL:         strings.TrimRight(baseURL, "/") + "/uploads/" + a.FileName,
	}
}
