package classify

import (
	"fmt"
	"sort"

	"github.com/packagewjx/student-analyzer/internal/preprocess"
	"github.com/packagewjx/student-analyzer/internal/report"
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
)

const DefaultNumPatterns = 3

// PatternColumns 用于识别学习模式的列
var PatternColumns = []string{core.ColumnStudyHours, core.ColumnAttendance, core.ColumnMidterm, core.ColumnHomework}

// Pattern 一类学习模式，中心为原始单位
type Pattern struct {
	Id           int     `json:"id"`
	StudyHours   float64 `json:"studyHours"`
	Attendance   float64 `json:"attendance"`
	MidtermScore float64 `json:"midtermScore"`
	HomeworkRate float64 `json:"homeworkRate"`
	Count        int     `json:"count"`
	AvgFinal     float64 `json:"avgFinal"`
	PassRate     float64 `json:"passRate"`
}

func (p *Pattern) Label() string {
	return fmt.Sprintf("模式%d", p.Id)
}

// ClusterStudents 将学生按学习习惯聚类，结果按平均期末成绩从高到低编号
func ClusterStudents(records []*core.StudentRecord, numClass, round int) ([]*Pattern, error) {
	clusterer, err := NewClusterer(KMeans, round)
	if err != nil {
		return nil, err
	}
	if numClass <= 0 || numClass > len(records) {
		return nil, errors.Wrapf(ErrInvalidNumClass, "类别数为%d，应在1到%d之间", numClass, len(records))
	}

	scaler := preprocess.NewStandardScaler(PatternColumns)
	if err := scaler.Fit(records); err != nil {
		return nil, errors.Wrap(err, "标准化失败")
	}
	data := make([][]float64, len(records))
	for i, record := range records {
		if data[i], err = scaler.Transform(record); err != nil {
			return nil, err
		}
	}

	centers, class, err := clusterer.Cluster(data, numClass)
	if err != nil {
		return nil, errors.Wrap(err, "聚类失败")
	}

	patterns := make([]*Pattern, len(centers))
	finalSum := make([]float64, len(centers))
	passed := make([]int, len(centers))
	for i, center := range centers {
		origin := make([]float64, len(center))
		for j, v := range center {
			origin[j] = v*scaler.Stds[j] + scaler.Means[j]
		}
		patterns[i] = &Pattern{
			StudyHours:   report.Round1(origin[0]),
			Attendance:   origin[1],
			MidtermScore: report.Round1(origin[2]),
			HomeworkRate: origin[3],
		}
	}
	for i, c := range class {
		patterns[c].Count++
		finalSum[c] += records[i].FinalScore
		if records[i].FinalScore >= core.PassScore {
			passed[c]++
		}
	}
	for i, p := range patterns {
		if p.Count == 0 {
			continue
		}
		p.AvgFinal = report.Round1(finalSum[i] / float64(p.Count))
		p.PassRate = report.Round1(float64(passed[i]) / float64(p.Count) * 100)
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].AvgFinal > patterns[j].AvgFinal
	})
	for i, p := range patterns {
		p.Id = i
	}
	return patterns, nil
}

// Centers 返回各模式的中心，列顺序与PatternColumns一致
func Centers(patterns []*Pattern) [][]float32 {
	result := make([][]float32, len(patterns))
	for i, p := range patterns {
		result[i] = []float32{float32(p.StudyHours), float32(p.Attendance), float32(p.MidtermScore), float32(p.HomeworkRate)}
	}
	return result
}
