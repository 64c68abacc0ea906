package models

import "time"

type Teacher struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	SchoolName   string    `json:"schoolname" db:"schoolname"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}

type TeacherResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	SchoolName string `json:"schoolname"`
}

func (t *Teacher) Public() TeacherResponse {
	return TeacherResponse{
		ID:         t.ID,
		Name:       t.Name,
		Email:      t.Email,
		SchoolName: t.SchoolName,
	}
}
