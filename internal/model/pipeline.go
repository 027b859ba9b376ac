package model

import (
	"fmt"
	"time"

	"github.com/packagewjx/student-analyzer/internal/preprocess"
	"github.com/packagewjx/student-analyzer/internal/regress"
	"github.com/packagewjx/student-analyzer/internal/report"
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
)

// Pipeline 特征预处理与随机森林组成的成绩预测模型
type Pipeline struct {
	Preprocessor   *preprocess.ColumnTransformer
	Forest         *regress.Forest
	FeatureColumns []string
	TrainedAt      time.Time
	NumSamples     int
}

func NewPipeline() *Pipeline {
	return &Pipeline{
		Preprocessor: preprocess.Default(),
		Forest:       regress.Default(),
	}
}

func (p *Pipeline) Fit(records []*core.StudentRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("训练数据为空")
	}
	if err := p.Preprocessor.Fit(records); err != nil {
		return err
	}
	x, err := preprocess.TransformAll(p.Preprocessor, records)
	if err != nil {
		return err
	}
	y := make([]float64, len(records))
	for i, record := range records {
		y[i] = record.FinalScore
	}
	if err = p.Forest.Fit(x, y); err != nil {
		return errors.Wrap(err, "训练随机森林失败")
	}

	p.FeatureColumns = p.Preprocessor.FeatureNames()
	p.TrainedAt = time.Now()
	p.NumSamples = len(records)
	return nil
}

// Predict 预测期末成绩，保留一位小数。record的FinalScore被忽略
func (p *Pipeline) Predict(record *core.StudentRecord) (float64, error) {
	x, err := p.Preprocessor.Transform(record)
	if err != nil {
		return 0, err
	}
	if len(x) != len(p.FeatureColumns) {
		return 0, fmt.Errorf("特征数量为%d，与训练时的%d不一致", len(x), len(p.FeatureColumns))
	}
	score, err := p.Forest.Predict(x)
	if err != nil {
		return 0, err
	}
	return report.Round1(score), nil
}
