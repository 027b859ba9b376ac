package store

import (
	"gorm.io/gorm"
)

type PredictionDO struct {
	gorm.Model
	RequestId    string `gorm:"uniqueIndex;size:36"`
	StudentId    string `gorm:"index;size:64"`
	Gender       string `gorm:"size:8"`
	Major        string `gorm:"size:32"`
	StudyHours   float64
	Attendance   float64
	MidtermScore float64
	HomeworkRate float64
	Score        float64
	Passed       bool
}
