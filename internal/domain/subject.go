package domain

import "time"

type SubjectLevel string

const (
	LevelK12       SubjectLevel = "K12"
	LevelUndergrad SubjectLevel = "Undergrad"
	LevelGraduate  SubjectLevel = "Graduate"
	LevelOther     SubjectLevel = "Other"
)

func (l SubjectLevel) Valid() bool {
	switch l {
	case LevelK12, LevelUndergrad, LevelGraduate, LevelOther:
		return true
	}
	return false
}

type Subject struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name" validate:"required"`
	Level     SubjectLevel `json:"level"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
