package preprocess

import (
	"fmt"

	"github.com/packagewjx/student-analyzer/pkg/core"
	"gonum.org/v1/gonum/stat"
)

// StandardScaler 使用总体均值与标准差标准化，标准差为0时不缩放
type StandardScaler struct {
	Columns []string
	Means   []float64
	Stds    []float64
}

func NewStandardScaler(columns []string) *StandardScaler {
	return &StandardScaler{Columns: columns}
}

func (s *StandardScaler) Fit(records []*core.StudentRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("标准化没有数据")
	}
	s.Means = make([]float64, len(s.Columns))
	s.Stds = make([]float64, len(s.Columns))
	values := make([]float64, len(records))
	for ci, column := range s.Columns {
		for ri, record := range records {
			v, err := numericValue(record, column)
			if err != nil {
				return err
			}
			values[ri] = v
		}
		mean, std := stat.PopMeanStdDev(values, nil)
		if std == 0 {
			std = 1
		}
		s.Means[ci] = mean
		s.Stds[ci] = std
	}
	return nil
}

func (s *StandardScaler) Transform(record *core.StudentRecord) ([]float64, error) {
	if len(s.Means) != len(s.Columns) {
		return nil, fmt.Errorf("标准化尚未训练")
	}
	result := make([]float64, len(s.Columns))
	for i, column := range s.Columns {
		v, err := numericValue(record, column)
		if err != nil {
			return nil, err
		}
		result[i] = (v - s.Means[i]) / s.Stds[i]
	}
	return result, nil
}

func (s *StandardScaler) FeatureNames() []string {
	names := make([]string, len(s.Columns))
	copy(names, s.Columns)
	return names
}
