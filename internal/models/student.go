package models

import "time"

type Student struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Age          int       `json:"age" db:"age"`
	SchoolName   string    `json:"schoolname" db:"schoolname"`
	ClassOfStudy string    `json:"classofstudy" db:"classofstudy"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Score        int       `json:"score" db:"score"`
	XP           int       `json:"xp" db:"xp"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}

// StudentResponse is the public representation of a student.
type StudentResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	SchoolName   string `json:"schoolname"`
	ClassOfStudy string `json:"classofstudy"`
	Score        int    `json:"score"`
	XP           int    `json:"xp"`
}

func (s *Student) Public() StudentResponse {
	return StudentResponse{
		ID:           s.ID,
		Name:         s.Name,
		Age:          s.Age,
		SchoolName:   s.SchoolName,
		ClassOfStudy: s.ClassOfStudy,
		Score:        s.Score,
		XP:           s.XP,
	}
}

func PublicStudents(students []Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for i := range students {
		out = append(out, students[i].Public())
	}
	return out
}
