package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBox(t *testing.T) {
	data := []float64{55, 60, 62, 65, 70, 72, 75, 80, 85, 10}
	box := Box(data)
	assert.LessOrEqual(t, box.Min, box.Q1)
	assert.LessOrEqual(t, box.Q1, box.Median)
	assert.LessOrEqual(t, box.Median, box.Q3)
	assert.LessOrEqual(t, box.Q3, box.Max)
	assert.Equal(t, []float64{10}, box.Outliers)
	assert.Equal(t, 55.0, box.Min)
	assert.Equal(t, 85.0, box.Max)
	// 输入不被排序
	assert.Equal(t, 10.0, data[9])

	assert.Equal(t, BoxStats{}, Box(nil))
}

func TestHistogram(t *testing.T) {
	data := []float64{40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 95, 100}
	bins := Histogram(data, 10)
	assert.Equal(t, 10, len(bins))
	assert.Equal(t, 40.0, bins[0].Lower)
	assert.Equal(t, 100.0, bins[9].Upper)
	assert.Equal(t, 2, bins[0].Count) // 40, 45
	assert.Equal(t, 2, bins[9].Count) // 95, 100

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, len(data), total)
	assert.Equal(t, "40.0-46.0", bins[0].Label())

	same := Histogram([]float64{70, 70}, 10)
	assert.Equal(t, []HistogramBin{{Lower: 70, Upper: 70, Count: 2}}, same)

	assert.Equal(t, 0, len(Histogram(nil, 10)))
}
