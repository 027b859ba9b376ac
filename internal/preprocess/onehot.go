package preprocess

import (
	"fmt"
	"sort"

	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
)

// OneHotEncoder 独热编码，类别按字符串排序后丢弃第一个
type OneHotEncoder struct {
	Column     string
	Categories []string
}

func NewOneHotEncoder(column string) *OneHotEncoder {
	return &OneHotEncoder{Column: column}
}

func (o *OneHotEncoder) Fit(records []*core.StudentRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("列%s没有数据", o.Column)
	}
	set := make(map[string]struct{})
	for _, record := range records {
		v, err := categoricalValue(record, o.Column)
		if err != nil {
			return err
		}
		set[v] = struct{}{}
	}
	o.Categories = make([]string, 0, len(set))
	for v := range set {
		o.Categories = append(o.Categories, v)
	}
	sort.Strings(o.Categories)
	return nil
}

func (o *OneHotEncoder) Transform(record *core.StudentRecord) ([]float64, error) {
	v, err := categoricalValue(record, o.Column)
	if err != nil {
		return nil, err
	}
	idx := sort.SearchStrings(o.Categories, v)
	if idx == len(o.Categories) || o.Categories[idx] != v {
		return nil, errors.Wrap(ErrUnknownCategory, fmt.Sprintf("列%s的值[%s]", o.Column, v))
	}
	result := make([]float64, len(o.Categories)-1)
	if idx > 0 {
		result[idx-1] = 1
	}
	return result, nil
}

func (o *OneHotEncoder) FeatureNames() []string {
	if len(o.Categories) == 0 {
		return []string{}
	}
	names := make([]string, 0, len(o.Categories)-1)
	for _, c := range o.Categories[1:] {
		names = append(names, o.Column+"_"+c)
	}
	return names
}
