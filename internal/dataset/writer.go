package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
)

// Write 以标准列顺序输出带表头的数据文件
func Write(out io.Writer, records []*core.StudentRecord) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(core.Columns); err != nil {
		return errors.Wrap(err, "写入表头出错")
	}
	for i, r := range records {
		err := writer.Write([]string{
			r.StudentId,
			string(r.Gender),
			string(r.Major),
			formatFloat(r.StudyHours),
			formatFloat(r.Attendance),
			formatFloat(r.MidtermScore),
			formatFloat(r.HomeworkRate),
			formatFloat(r.FinalScore),
		})
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("写入第%d条数据出错", i))
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
