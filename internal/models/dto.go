package models

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// FlexInt decodes from a JSON number or a numeric string.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	switch v := value.(type) {
	case nil:
		*f = 0
		return nil
	case float64:
		if v != math.Trunc(v) {
			return fmt.Errorf("invalid integer value %s", data)
		}
	case string:
		// cast reads a leading zero as an octal prefix.
		v = strings.TrimSpace(v)
		for len(v) > 1 && v[0] == '0' && v[1] >= '0' && v[1] <= '9' {
			v = v[1:]
		}
		value = v
	default:
		return fmt.Errorf("invalid integer value %s", data)
	}

	n, err := cast.ToInt64E(value)
	if err != nil {
		return fmt.Errorf("invalid integer value %s", data)
	}
	*f = FlexInt(n)
	return nil
}

func (f FlexInt) Int() int {
	return int(f)
}

func (f FlexInt) Int64() int64 {
	return int64(f)
}

type StudentSignupRequest struct {
	Name         string  `json:"name" validate:"required,max=50"`
	Age          FlexInt `json:"age" validate:"required,gt=0"`
	SchoolName   string  `json:"schoolname" validate:"required,max=50"`
	ClassOfStudy string  `json:"classofstudy" validate:"required,max=30"`
	Password     string  `json:"password" validate:"required"`
}

type TeacherSignupRequest struct {
	Name       string `json:"name" validate:"required,max=50"`
	Email      string `json:"email" validate:"required,max=120"`
	SchoolName string `json:"schoolname" validate:"required,max=50"`
	Password   string `json:"password" validate:"required"`
}

type StudentLoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type TeacherLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateExamRequest struct {
	Title     string  `json:"title" validate:"required,max=100"`
	Subject   string  `json:"subject" validate:"required,max=50"`
	Duration  FlexInt `json:"duration" validate:"required,gt=0"`
	TeacherID FlexInt `json:"teacher_id" validate:"required,gt=0"`
}

type AddQuestionRequest struct {
	Question string `json:"question" validate:"required"`
	A        string `json:"A" validate:"required,max=200"`
	B        string `json:"B" validate:"required,max=200"`
	C        string `json:"C" validate:"required,max=200"`
	D        string `json:"D" validate:"required,max=200"`
	Correct  string `json:"correct" validate:"required,oneof=A B C D"`
}

// SubmitExamRequest maps question ids to the selected option letter.
type SubmitExamRequest struct {
	StudentID FlexInt           `json:"student_id" validate:"required"`
	Answers   map[string]string `json:"answers"`
}

type ScoreUpdateRequest struct {
	Name  string  `json:"name" validate:"required"`
	Score FlexInt `json:"score"`
}

// ProfileUpdateRequest only overwrites the fields that are present.
type ProfileUpdateRequest struct {
	Name         string   `json:"name" validate:"required"`
	Age          *FlexInt `json:"age" validate:"omitempty,gt=0"`
	SchoolName   *string  `json:"schoolname" validate:"omitempty,max=50"`
	ClassOfStudy *string  `json:"classofstudy" validate:"omitempty,max=30"`
	Password     *string  `json:"password" validate:"omitempty,min=1"`
}

// UploadedFile is one file part of a multipart upload.
type UploadedFile struct {
	Name    string
	Size    int64
	Content io.Reader
}
