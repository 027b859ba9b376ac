package preprocess

import (
	"testing"

	"github.com/packagewjx/student-analyzer/internal/dataset"
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func testRecords() []*core.StudentRecord {
	return []*core.StudentRecord{
		{Gender: core.Male, Major: core.MajorAI, StudyHours: 10, Attendance: 0.8, MidtermScore: 70, HomeworkRate: 0.9},
		{Gender: core.Female, Major: core.MajorBigData, StudyHours: 20, Attendance: 0.6, MidtermScore: 80, HomeworkRate: 0.9},
		{Gender: core.Male, Major: core.MajorFinance, StudyHours: 30, Attendance: 1.0, MidtermScore: 90, HomeworkRate: 0.9},
	}
}

func TestOneHotEncoder(t *testing.T) {
	encoder := NewOneHotEncoder(core.ColumnMajor)
	assert.NoError(t, encoder.Fit(testRecords()))
	assert.Equal(t, []string{string(core.MajorAI), string(core.MajorBigData), string(core.MajorFinance)}, encoder.Categories)
	assert.Equal(t, []string{"专业_大数据管理", "专业_财务管理"}, encoder.FeatureNames())

	x, err := encoder.Transform(&core.StudentRecord{Major: core.MajorAI})
	assert.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, x)
	x, err = encoder.Transform(&core.StudentRecord{Major: core.MajorFinance})
	assert.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, x)

	/* 未知类别 */
	_, err = encoder.Transform(&core.StudentRecord{Major: core.MajorECommerce})
	assert.Equal(t, ErrUnknownCategory, errors.Cause(err))

	/* 没有数据 */
	assert.Error(t, NewOneHotEncoder(core.ColumnGender).Fit(nil))
	/* 不是类别列 */
	assert.Error(t, NewOneHotEncoder(core.ColumnMidterm).Fit(testRecords()))
}

func TestStandardScaler(t *testing.T) {
	scaler := NewStandardScaler(NumericColumns)
	assert.NoError(t, scaler.Fit(testRecords()))
	assert.InDelta(t, 20, scaler.Means[0], 1e-9)
	// 所有作业完成率相同，标准差视为1
	assert.Equal(t, 1.0, scaler.Stds[3])

	x, err := scaler.Transform(testRecords()[1])
	assert.NoError(t, err)
	assert.InDelta(t, 0, x[0], 1e-9)
	assert.InDelta(t, 0, x[3], 1e-9)

	all := make([]float64, 3)
	for i, r := range testRecords() {
		x, err := scaler.Transform(r)
		require.NoError(t, err)
		all[i] = x[2]
	}
	mean, std := stat.PopMeanStdDev(all, nil)
	assert.InDelta(t, 0, mean, 1e-9)
	assert.InDelta(t, 1, std, 1e-9)

	_, err = NewStandardScaler(NumericColumns).Transform(testRecords()[0])
	assert.Error(t, err)
}

func TestColumnTransformer(t *testing.T) {
	records, err := dataset.LoadFile("../../test/data/students.txt")
	require.NoError(t, err)

	transformer := Default()
	assert.NoError(t, transformer.Fit(records))
	names := transformer.FeatureNames()
	assert.Equal(t, []string{
		"性别_男",
		"专业_大数据管理", "专业_工商管理", "专业_电子商务", "专业_财务管理",
		core.ColumnStudyHours, core.ColumnAttendance, core.ColumnMidterm, core.ColumnHomework,
	}, names)

	x, err := TransformAll(transformer, records)
	assert.NoError(t, err)
	assert.Equal(t, len(records), len(x))
	for _, row := range x {
		assert.Equal(t, len(names), len(row))
	}

	_, err = transformer.Transform(&core.StudentRecord{Gender: core.Gender("未知"), Major: core.MajorAI})
	assert.Equal(t, ErrUnknownCategory, errors.Cause(err))
}
