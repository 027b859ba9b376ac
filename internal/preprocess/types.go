package preprocess

import (
	"fmt"

	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
)

var ErrUnknownCategory = fmt.Errorf("该类别未在训练数据中出现")

// Preprocessor 将学生记录转换为特征向量。Fit之后才能调用Transform
type Preprocessor interface {
	Fit(records []*core.StudentRecord) error
	Transform(record *core.StudentRecord) ([]float64, error)
	FeatureNames() []string
}

// CategoricalColumns 参与独热编码的列
var CategoricalColumns = []string{core.ColumnGender, core.ColumnMajor}

// NumericColumns 参与标准化的列
var NumericColumns = []string{core.ColumnStudyHours, core.ColumnAttendance, core.ColumnMidterm, core.ColumnHomework}

func Default() *ColumnTransformer {
	return NewColumnTransformer(CategoricalColumns, NumericColumns)
}

// TransformAll 批量转换
func TransformAll(p Preprocessor, records []*core.StudentRecord) ([][]float64, error) {
	result := make([][]float64, len(records))
	for i, record := range records {
		x, err := p.Transform(record)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("转换第%d条记录失败", i))
		}
		result[i] = x
	}
	return result, nil
}

func categoricalValue(record *core.StudentRecord, column string) (string, error) {
	switch column {
	case core.ColumnGender:
		return string(record.Gender), nil
	case core.ColumnMajor:
		return string(record.Major), nil
	case core.ColumnStudentId:
		return record.StudentId, nil
	}
	return "", fmt.Errorf("列%s不是类别列", column)
}

func numericValue(record *core.StudentRecord, column string) (float64, error) {
	switch column {
	case core.ColumnStudyHours:
		return record.StudyHours, nil
	case core.ColumnAttendance:
		return record.Attendance, nil
	case core.ColumnMidterm:
		return record.MidtermScore, nil
	case core.ColumnHomework:
		return record.HomeworkRate, nil
	case core.ColumnFinalScore:
		return record.FinalScore, nil
	}
	return 0, fmt.Errorf("列%s不是数值列", column)
}
