package report

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// whiskerRange 须线为1.5倍四分位距
const whiskerRange = 1.5

// Box 计算箱线图数据。data不会被修改
func Box(data []float64) BoxStats {
	if len(data) == 0 {
		return BoxStats{}
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	box := BoxStats{
		Q1:       stat.Quantile(0.25, stat.LinInterp, sorted, nil),
		Median:   stat.Quantile(0.5, stat.LinInterp, sorted, nil),
		Q3:       stat.Quantile(0.75, stat.LinInterp, sorted, nil),
		Outliers: make([]float64, 0),
	}
	iqr := box.Q3 - box.Q1
	low := box.Q1 - whiskerRange*iqr
	high := box.Q3 + whiskerRange*iqr

	box.Min = box.Q1
	box.Max = box.Q3
	for _, v := range sorted {
		if v < low || v > high {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		if v < box.Min {
			box.Min = v
		}
		if v > box.Max {
			box.Max = v
		}
	}
	return box
}

// Histogram 将[min, max]等分为numBins个区间并计数，最后一个区间包含上界
func Histogram(data []float64, numBins int) []HistogramBin {
	if len(data) == 0 || numBins <= 0 {
		return []HistogramBin{}
	}
	lo, hi := data[0], data[0]
	for _, v := range data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return []HistogramBin{{Lower: lo, Upper: hi, Count: len(data)}}
	}

	width := (hi - lo) / float64(numBins)
	bins := make([]HistogramBin, numBins)
	for i := range bins {
		bins[i].Lower = lo + width*float64(i)
		bins[i].Upper = lo + width*float64(i+1)
	}
	bins[numBins-1].Upper = hi

	for _, v := range data {
		idx := int((v - lo) / width)
		if idx >= numBins {
			idx = numBins - 1
		}
		bins[idx].Count++
	}
	return bins
}
