package server

import (
	"fmt"
	"math"
	"time"

	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
)

var ErrInvalidInput = fmt.Errorf("输入数据有误")

// 表单各项的取值范围
const (
	MinStudyHours = 0.0
	MaxStudyHours = 60.0
	MinRate       = 0.0
	MaxRate       = 1.0
	MinScore      = 0.0
	MaxScore      = 100.0
)

type PredictionInput struct {
	StudentId    string      `json:"studentId,omitempty"`
	Gender       core.Gender `json:"gender"`
	Major        core.Major  `json:"major"`
	StudyHours   *float64    `json:"studyHours"`
	Attendance   *float64    `json:"attendance"`
	MidtermScore *float64    `json:"midtermScore"`
	HomeworkRate *float64    `json:"homeworkRate"`
}

// Validate 检查缺失与越界的字段，返回的错误的Cause为ErrInvalidInput
func (in *PredictionInput) Validate() error {
	if in.Gender == "" {
		return errors.Wrap(ErrInvalidInput, "请选择性别")
	}
	if !core.IsValidGender(in.Gender) {
		return errors.Wrap(ErrInvalidInput, fmt.Sprintf("性别[%s]无效", in.Gender))
	}
	if in.Major == "" {
		return errors.Wrap(ErrInvalidInput, "请选择专业")
	}
	if !core.IsValidMajor(in.Major) {
		return errors.Wrap(ErrInvalidInput, fmt.Sprintf("专业[%s]无效", in.Major))
	}

	checks := []struct {
		name     string
		value    *float64
		min, max float64
	}{
		{core.ColumnStudyHours, in.StudyHours, MinStudyHours, MaxStudyHours},
		{core.ColumnAttendance, in.Attendance, MinRate, MaxRate},
		{core.ColumnMidterm, in.MidtermScore, MinScore, MaxScore},
		{core.ColumnHomework, in.HomeworkRate, MinRate, MaxRate},
	}
	for _, c := range checks {
		if c.value == nil {
			return errors.Wrap(ErrInvalidInput, fmt.Sprintf("请填写%s", c.name))
		}
		if math.IsNaN(*c.value) || math.IsInf(*c.value, 0) {
			return errors.Wrap(ErrInvalidInput, fmt.Sprintf("%s不是有效的数值", c.name))
		}
		if *c.value < c.min || *c.value > c.max {
			return errors.Wrap(ErrInvalidInput, fmt.Sprintf("%s应在%g到%g之间，现在为%g", c.name, c.min, c.max, *c.value))
		}
	}
	return nil
}

// Record 转换为学生记录，调用前需先Validate
func (in *PredictionInput) Record() *core.StudentRecord {
	return &core.StudentRecord{
		StudentId:    in.StudentId,
		Gender:       in.Gender,
		Major:        in.Major,
		StudyHours:   *in.StudyHours,
		Attendance:   *in.Attendance,
		MidtermScore: *in.MidtermScore,
		HomeworkRate: *in.HomeworkRate,
	}
}

type Feedback struct {
	Title   string `json:"title"`
	Caption string `json:"caption"`
	Advice  string `json:"advice"`
	Image   string `json:"image"`
}

type PredictionResult struct {
	RequestId string    `json:"requestId"`
	Score     float64   `json:"score"`
	Passed    bool      `json:"passed"`
	Feedback  *Feedback `json:"feedback"`
}

// PredictionRecord 一次成绩预测的历史记录
type PredictionRecord struct {
	RequestId    string      `json:"requestId"`
	StudentId    string      `json:"studentId,omitempty"`
	Gender       core.Gender `json:"gender"`
	Major        core.Major  `json:"major"`
	StudyHours   float64     `json:"studyHours"`
	Attendance   float64     `json:"attendance"`
	MidtermScore float64     `json:"midtermScore"`
	HomeworkRate float64     `json:"homeworkRate"`
	Score        float64     `json:"score"`
	Passed       bool        `json:"passed"`
	CreatedAt    time.Time   `json:"createdAt"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type API interface {
	Predict(input *PredictionInput) (*PredictionResult, error)

	QueryPredictions(studentId string, limit int) ([]*PredictionRecord, error)
}
