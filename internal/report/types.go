package report

import (
	"fmt"

	"github.com/packagewjx/student-analyzer/pkg/core"
)

var ErrMajorNotFound = fmt.Errorf("数据中不存在该专业的学生")

// DefaultFocusMajor 专项分析默认的专业
const DefaultFocusMajor = core.MajorBigData

// HistogramBins 专项分析中期末成绩分布的分箱数
const HistogramBins = 10

type GenderRatioRow struct {
	Major  core.Major `json:"major"`
	Female float64    `json:"female"` // 女生比例(%)
	Male   float64    `json:"male"`   // 男生比例(%)
}

type MetricMeansRow struct {
	Major      core.Major `json:"major"`
	StudyHours float64    `json:"studyHours"`
	Midterm    float64    `json:"midterm"`
	Final      float64    `json:"final"`
}

type AttendanceRank struct {
	Rank          int        `json:"rank"` // 从0开始
	Major         core.Major `json:"major"`
	AvgAttendance float64    `json:"avgAttendance"` // 百分比
}

type BoxStats struct {
	Min      float64   `json:"min"` // 下须
	Q1       float64   `json:"q1"`
	Median   float64   `json:"median"`
	Q3       float64   `json:"q3"`
	Max      float64   `json:"max"` // 上须
	Outliers []float64 `json:"outliers"`
}

type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

func (b HistogramBin) Label() string {
	return fmt.Sprintf("%.1f-%.1f", b.Lower, b.Upper)
}

type DeepDive struct {
	Major         core.Major            `json:"major"`
	Count         int                   `json:"count"`
	AvgStudyHours float64               `json:"avgStudyHours"`
	AvgAttendance float64               `json:"avgAttendance"` // 百分比
	AvgFinal      float64               `json:"avgFinal"`
	PassRate      float64               `json:"passRate"` // 百分比
	Box           BoxStats              `json:"box"`
	Histogram     []HistogramBin        `json:"histogram"`
	Records       []*core.StudentRecord `json:"records"`
}

// Report 为各页面所需的聚合数据，每次请求重新计算或从缓存获取
type Report struct {
	TotalStudents     int              `json:"totalStudents"`
	Majors            []core.Major     `json:"majors"`
	GenderRatios      []GenderRatioRow `json:"genderRatios"`
	MetricMeans       []MetricMeansRow `json:"metricMeans"`
	AttendanceRanking []AttendanceRank `json:"attendanceRanking"`
	DeepDive          *DeepDive        `json:"deepDive"`
	DeepDiveError     string           `json:"deepDiveError,omitempty"`
}
