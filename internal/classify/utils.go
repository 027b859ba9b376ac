package classify

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// OutputResult 将数据以CSV格式写出，header为空时不输出表头
func OutputResult(data [][]float32, header []string, output io.Writer, precision int) error {
	writer := csv.NewWriter(output)
	if len(header) != 0 {
		if err := writer.Write(header); err != nil {
			return errors.Wrap(err, "写入表头错误")
		}
	}
	for _, datum := range data {
		record := make([]string, len(datum))
		for i, f := range datum {
			record[i] = strconv.FormatFloat(float64(f), 'f', precision, 32)
		}
		err := writer.Write(record)
		if err != nil {
			return errors.Wrap(err, "写入数据错误")
		}
	}

	writer.Flush()
	return writer.Error()
}
