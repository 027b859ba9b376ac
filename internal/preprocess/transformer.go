package preprocess

import (
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
)

// ColumnTransformer 先输出各类别列的独热编码，再输出标准化后的数值列
type ColumnTransformer struct {
	Encoders []*OneHotEncoder
	Scaler   *StandardScaler
}

func NewColumnTransformer(categorical, numeric []string) *ColumnTransformer {
	encoders := make([]*OneHotEncoder, len(categorical))
	for i, column := range categorical {
		encoders[i] = NewOneHotEncoder(column)
	}
	return &ColumnTransformer{
		Encoders: encoders,
		Scaler:   NewStandardScaler(numeric),
	}
}

func (c *ColumnTransformer) chain() []Preprocessor {
	chain := make([]Preprocessor, 0, len(c.Encoders)+1)
	for _, encoder := range c.Encoders {
		chain = append(chain, encoder)
	}
	return append(chain, c.Scaler)
}

func (c *ColumnTransformer) Fit(records []*core.StudentRecord) error {
	for _, p := range c.chain() {
		if err := p.Fit(records); err != nil {
			return errors.Wrap(err, "特征预处理训练失败")
		}
	}
	return nil
}

func (c *ColumnTransformer) Transform(record *core.StudentRecord) ([]float64, error) {
	result := make([]float64, 0)
	for _, p := range c.chain() {
		x, err := p.Transform(record)
		if err != nil {
			return nil, err
		}
		result = append(result, x...)
	}
	return result, nil
}

func (c *ColumnTransformer) FeatureNames() []string {
	names := make([]string, 0)
	for _, p := range c.chain() {
		names = append(names, p.FeatureNames()...)
	}
	return names
}
