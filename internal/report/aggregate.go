package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Round1 保留一位小数，遇到恰好一半时取偶数
func Round1(x float64) float64 {
	return math.RoundToEven(x*10) / 10
}

// Build 计算所有页面所需的聚合数据。focusMajor不存在时DeepDive为nil，原因记录在DeepDiveError中
func Build(records []*core.StudentRecord, focusMajor core.Major) *Report {
	r := &Report{
		TotalStudents:     len(records),
		Majors:            majorsOf(records),
		GenderRatios:      GenderRatio(records),
		MetricMeans:       MetricMeans(records),
		AttendanceRanking: AttendanceRanking(records),
	}
	deepDive, err := MajorDeepDive(records, focusMajor)
	if err != nil {
		r.DeepDiveError = err.Error()
	} else {
		r.DeepDive = deepDive
	}
	return r
}

// groupByMajor 按专业分组，返回的专业按名称排序
func groupByMajor(records []*core.StudentRecord) ([]core.Major, map[core.Major][]*core.StudentRecord) {
	groups := make(map[core.Major][]*core.StudentRecord)
	for _, r := range records {
		groups[r.Major] = append(groups[r.Major], r)
	}
	majors := make([]core.Major, 0, len(groups))
	for m := range groups {
		majors = append(majors, m)
	}
	sort.Slice(majors, func(i, j int) bool {
		return majors[i] < majors[j]
	})
	return majors, groups
}

func majorsOf(records []*core.StudentRecord) []core.Major {
	majors, _ := groupByMajor(records)
	return majors
}

func column(records []*core.StudentRecord, get func(r *core.StudentRecord) float64) []float64 {
	result := make([]float64, len(records))
	for i, r := range records {
		result[i] = get(r)
	}
	return result
}

// GenderRatio 各专业男女比例(%)
func GenderRatio(records []*core.StudentRecord) []GenderRatioRow {
	majors, groups := groupByMajor(records)
	result := make([]GenderRatioRow, 0, len(majors))
	for _, m := range majors {
		female, male := 0, 0
		for _, r := range groups[m] {
			switch r.Gender {
			case core.Female:
				female++
			case core.Male:
				male++
			}
		}
		row := GenderRatioRow{Major: m}
		if total := female + male; total != 0 {
			row.Female = Round1(float64(female) / float64(total) * 100)
			row.Male = Round1(float64(male) / float64(total) * 100)
		}
		result = append(result, row)
	}
	return result
}

// MetricMeans 各专业平均学习时长、期中与期末成绩
func MetricMeans(records []*core.StudentRecord) []MetricMeansRow {
	majors, groups := groupByMajor(records)
	result := make([]MetricMeansRow, 0, len(majors))
	for _, m := range majors {
		g := groups[m]
		result = append(result, MetricMeansRow{
			Major:      m,
			StudyHours: Round1(stat.Mean(column(g, func(r *core.StudentRecord) float64 { return r.StudyHours }), nil)),
			Midterm:    Round1(stat.Mean(column(g, func(r *core.StudentRecord) float64 { return r.MidtermScore }), nil)),
			Final:      Round1(stat.Mean(column(g, func(r *core.StudentRecord) float64 { return r.FinalScore }), nil)),
		})
	}
	return result
}

// AttendanceRanking 各专业平均出勤率排名。出勤率相同时保持专业名称顺序
func AttendanceRanking(records []*core.StudentRecord) []AttendanceRank {
	majors, groups := groupByMajor(records)
	result := make([]AttendanceRank, 0, len(majors))
	for _, m := range majors {
		mean := stat.Mean(column(groups[m], func(r *core.StudentRecord) float64 { return r.Attendance }), nil)
		result = append(result, AttendanceRank{
			Major:         m,
			AvgAttendance: Round1(mean * 100),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AvgAttendance > result[j].AvgAttendance
	})
	for i := range result {
		result[i].Rank = i
	}
	return result
}

// MajorDeepDive 单个专业的专项分析
func MajorDeepDive(records []*core.StudentRecord, major core.Major) (*DeepDive, error) {
	filtered := make([]*core.StudentRecord, 0)
	for _, r := range records {
		if r.Major == major {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return nil, errors.Wrap(ErrMajorNotFound, fmt.Sprintf("专业：%s", major))
	}

	finals := column(filtered, func(r *core.StudentRecord) float64 { return r.FinalScore })
	passed := 0
	for _, f := range finals {
		if f >= core.PassScore {
			passed++
		}
	}

	return &DeepDive{
		Major:         major,
		Count:         len(filtered),
		AvgStudyHours: Round1(stat.Mean(column(filtered, func(r *core.StudentRecord) float64 { return r.StudyHours }), nil)),
		AvgAttendance: Round1(stat.Mean(column(filtered, func(r *core.StudentRecord) float64 { return r.Attendance }), nil) * 100),
		AvgFinal:      Round1(stat.Mean(finals, nil)),
		PassRate:      Round1(float64(passed) / float64(len(filtered)) * 100),
		Box:           Box(finals),
		Histogram:     Histogram(finals, HistogramBins),
		Records:       filtered,
	}, nil
}
