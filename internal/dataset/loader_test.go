package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testDataset = "../../test/data/students.txt"

func TestLoadFile(t *testing.T) {
	records, err := LoadFile(testDataset)
	require.NoError(t, err)
	assert.Equal(t, 80, len(records))

	first := records[0]
	assert.Equal(t, "2023000001", first.StudentId)
	assert.Equal(t, core.Male, first.Gender)
	assert.Equal(t, core.MajorBusinessAdmin, first.Major)
	assert.Equal(t, 8.8, first.StudyHours)
	assert.Equal(t, 0.84, first.Attendance)
	assert.Equal(t, 44.2, first.MidtermScore)
	assert.Equal(t, 0.77, first.HomeworkRate)
	assert.Equal(t, 47.9, first.FinalScore)
}

func TestLoadFileNotExist(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	assert.Equal(t, ErrDatasetNotFound, errors.Cause(err))
	assert.Contains(t, err.Error(), "missing.txt")
}

func TestCsvLoader(t *testing.T) {
	// 列顺序不同、带BOM、多余列与空行
	input := "\ufeff专业,学号,性别,备注,每周学习时长（小时）,上课出勤率,期中考试分数,作业完成率,期末考试分数\n" +
		"人工智能,1,女,x,12.5,0.9,80,0.85,78\n" +
		"\n" +
		"财务管理,2,男,y,3,0.5,40,0.2,30.5\n"
	records, err := NewLoader(CSV).Load(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, len(records))
	assert.Equal(t, core.MajorAI, records[0].Major)
	assert.Equal(t, core.Female, records[0].Gender)
	assert.Equal(t, 12.5, records[0].StudyHours)
	assert.Equal(t, 30.5, records[1].FinalScore)

	/*
		缺少列
	*/
	_, err = NewLoader(CSV).Load(strings.NewReader("学号,性别,专业\n1,男,人工智能\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), core.ColumnStudyHours)

	/*
		数据错误
	*/
	bad := strings.Join(core.Columns, ",") + "\n1,男,人工智能,abc,0.9,80,0.85,78\n"
	_, err = NewLoader(CSV).Load(strings.NewReader(bad))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "第2行")

	/*
		空文件
	*/
	_, err = NewLoader(CSV).Load(strings.NewReader(""))
	assert.Error(t, err)
}

func TestExcelLoader(t *testing.T) {
	f := excelize.NewFile()
	header := make([]interface{}, len(core.Columns))
	for i, c := range core.Columns {
		header[i] = c
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2",
		&[]interface{}{"2023000099", "女", "大数据管理", 20, 0.95, 88, 0.9, 91}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	records, err := NewLoader(Excel).Load(buf)
	require.NoError(t, err)
	require.Equal(t, 1, len(records))
	assert.Equal(t, "2023000099", records[0].StudentId)
	assert.Equal(t, core.MajorBigData, records[0].Major)
	assert.Equal(t, 91.0, records[0].FinalScore)
	assert.Equal(t, 0.95, records[0].Attendance)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, Excel, FormatOf("a/b/学生数据.XLSX"))
	assert.Equal(t, CSV, FormatOf("学生数据.txt"))
	assert.Equal(t, CSV, FormatOf("students.csv"))
}

func TestWriteRoundTrip(t *testing.T) {
	records, err := LoadFile(testDataset)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, records))

	reloaded, err := NewLoader(CSV).Load(buf)
	require.NoError(t, err)
	assert.Equal(t, records, reloaded)
}

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))
	a, err := Fingerprint(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("b"), 0644))
	b, err := Fingerprint(path)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 64, len(a))

	_, err = Fingerprint(filepath.Join(dir, "none.txt"))
	assert.Equal(t, ErrDatasetNotFound, errors.Cause(err))
}
