package dataset

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var ErrDatasetNotFound = fmt.Errorf("数据文件不存在")

type Loader interface {
	Load(in io.Reader) ([]*core.StudentRecord, error)
}

type Format string

const (
	CSV   = Format("csv")
	Excel = Format("xlsx")
)

func NewLoader(format Format) Loader {
	switch format {
	case CSV:
		return &csvLoader{}
	case Excel:
		return &excelLoader{}
	default:
		return nil
	}
}

// FormatOf 根据文件扩展名判断格式，非xlsx文件一律视为分隔符文本
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return Excel
	}
	return CSV
}

// LoadFile 读取数据文件。文件不存在时返回的错误的Cause为ErrDatasetNotFound
func LoadFile(path string) ([]*core.StudentRecord, error) {
	fin, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(ErrDatasetNotFound, fmt.Sprintf("数据文件 %s 不存在，请检查文件路径！", path))
	} else if err != nil {
		return nil, errors.Wrap(err, "打开数据文件错误")
	}
	defer func() {
		_ = fin.Close()
	}()

	return NewLoader(FormatOf(path)).Load(fin)
}

// Fingerprint 返回文件内容的sha256，作为数据集的版本
func Fingerprint(path string) (string, error) {
	fin, err := os.Open(path)
	if os.IsNotExist(err) {
		return "", errors.Wrap(ErrDatasetNotFound, fmt.Sprintf("数据文件 %s 不存在，请检查文件路径！", path))
	} else if err != nil {
		return "", errors.Wrap(err, "打开数据文件错误")
	}
	defer func() {
		_ = fin.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, fin); err != nil {
		return "", errors.Wrap(err, "读取数据文件错误")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type csvLoader struct {
}

func (c *csvLoader) Load(in io.Reader) ([]*core.StudentRecord, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "读取CSV数据出错")
	}
	return parseRows(records)
}

type excelLoader struct {
}

func (e *excelLoader) Load(in io.Reader) ([]*core.StudentRecord, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, errors.Wrap(err, "打开Excel文件错误")
	}
	defer func() {
		_ = f.Close()
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("Excel文件中没有工作表")
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("读取工作表%s出错", sheetName))
	}
	return parseRows(rows)
}

// parseRows 第一行为表头，按列名取值
func parseRows(rows [][]string) ([]*core.StudentRecord, error) {
	if len(rows) == 0 {
		return nil, errors.New("数据文件为空")
	}

	index := make(map[string]int)
	for i, name := range rows[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		index[name] = i
	}
	for _, column := range core.Columns {
		if _, ok := index[column]; !ok {
			return nil, fmt.Errorf("数据文件缺少列：%s", column)
		}
	}

	result := make([]*core.StudentRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if isBlank(row) {
			continue
		}
		cell := func(column string) string {
			idx := index[column]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		number := func(column string) (float64, error) {
			f, err := strconv.ParseFloat(cell(column), 64)
			if err != nil {
				return 0, errors.Wrap(err, fmt.Sprintf("第%d行“%s”列数据有误，数据为[%s]", line, column, cell(column)))
			}
			return f, nil
		}

		record := &core.StudentRecord{
			StudentId: cell(core.ColumnStudentId),
			Gender:    core.Gender(cell(core.ColumnGender)),
			Major:     core.Major(cell(core.ColumnMajor)),
		}
		var err error
		if record.StudyHours, err = number(core.ColumnStudyHours); err != nil {
			return nil, err
		}
		if record.Attendance, err = number(core.ColumnAttendance); err != nil {
			return nil, err
		}
		if record.MidtermScore, err = number(core.ColumnMidterm); err != nil {
			return nil, err
		}
		if record.HomeworkRate, err = number(core.ColumnHomework); err != nil {
			return nil, err
		}
		if record.FinalScore, err = number(core.ColumnFinalScore); err != nil {
			return nil, err
		}
		result = append(result, record)
	}

	return result, nil
}

func isBlank(row []string) bool {
	for _, s := range row {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
