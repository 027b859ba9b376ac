package chart

import (
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/packagewjx/student-analyzer/internal/classify"
	"github.com/packagewjx/student-analyzer/internal/report"
)

const (
	ColorSkyBlue   = "#87CEEB"
	ColorRoyalBlue = "#4169E1"
	ColorTomato    = "#FF6347"
)

const (
	defaultWidth  = "900px"
	defaultHeight = "450px"
)

// Snippet 可直接嵌入页面的图表片段
type Snippet struct {
	Element template.HTML
	Script  template.HTML
}

func RenderSnippet(r render.Renderer) Snippet {
	s := r.RenderSnippet()
	return Snippet{
		Element: template.HTML(s.Element),
		Script:  template.HTML(s.Script),
	}
}

func baseOpts(id, title, xName, yName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{ChartID: id, Width: defaultWidth, Height: defaultHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%", Top: "5%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	}
}

// GenderRatioChart 各专业男女比例分组柱状图
func GenderRatioChart(rows []report.GenderRatioRow) *charts.Bar {
	majors := make([]string, len(rows))
	male := make([]opts.BarData, len(rows))
	female := make([]opts.BarData, len(rows))
	for i, row := range rows {
		majors[i] = string(row.Major)
		male[i] = opts.BarData{Value: row.Male}
		female[i] = opts.BarData{Value: row.Female}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOpts("gender_ratio", "各专业男女性别比例", "专业", "比例(%)")...)
	bar.SetXAxis(majors).
		AddSeries("男", male, charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorSkyBlue})).
		AddSeries("女", female, charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorRoyalBlue}))
	return bar
}

// MetricMeansChart 期中成绩柱状图叠加学习时长与期末成绩折线
func MetricMeansChart(rows []report.MetricMeansRow) *charts.Bar {
	majors := make([]string, len(rows))
	midterm := make([]opts.BarData, len(rows))
	hours := make([]opts.LineData, len(rows))
	final := make([]opts.LineData, len(rows))
	for i, row := range rows {
		majors[i] = string(row.Major)
		midterm[i] = opts.BarData{Value: row.Midterm}
		hours[i] = opts.LineData{Value: row.StudyHours}
		final[i] = opts.LineData{Value: row.Final}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOpts("metric_means", "各专业学习时长与成绩对比", "专业", "数值")...)
	bar.SetGlobalOptions(charts.WithXAxisOpts(opts.XAxis{Name: "专业", AxisLabel: &opts.AxisLabel{Rotate: -45}}))
	bar.SetXAxis(majors).
		AddSeries("平均期中成绩", midterm, charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorRoyalBlue}))

	line := charts.NewLine()
	line.SetXAxis(majors).
		AddSeries("平均每周学习时长", hours,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorSkyBlue}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)})).
		AddSeries("平均期末成绩", final,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorTomato}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	bar.Overlap(line)
	return bar
}

// AttendanceChart 按出勤率排名的柱状图
func AttendanceChart(ranking []report.AttendanceRank) *charts.Bar {
	majors := make([]string, len(ranking))
	data := make([]opts.BarData, len(ranking))
	for i, r := range ranking {
		majors[i] = string(r.Major)
		data[i] = opts.BarData{Value: r.AvgAttendance}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOpts("attendance_rank", "各专业平均出勤率排名", "专业", "出勤率(%)")...)
	bar.SetXAxis(majors).
		AddSeries("平均出勤率", data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorRoyalBlue}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
	return bar
}

// BoxPlotChart 专项分析期末成绩箱线图
func BoxPlotChart(dive *report.DeepDive) *charts.BoxPlot {
	box := dive.Box
	name := string(dive.Major)

	boxPlot := charts.NewBoxPlot()
	boxPlot.SetGlobalOptions(baseOpts("final_box", name+"专业期末成绩分布", "专业", "期末成绩")...)
	boxPlot.SetGlobalOptions(charts.WithYAxisOpts(opts.YAxis{Name: "期末成绩", Min: 40, Max: 100}))
	boxPlot.SetXAxis([]string{name}).
		AddSeries("期末成绩", []opts.BoxPlotData{{Value: []float64{box.Min, box.Q1, box.Median, box.Q3, box.Max}}},
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorSkyBlue}))

	if len(box.Outliers) != 0 {
		outliers := make([]opts.ScatterData, len(box.Outliers))
		for i, v := range box.Outliers {
			outliers[i] = opts.ScatterData{Value: []interface{}{name, v}}
		}
		scatter := charts.NewScatter()
		scatter.SetXAxis([]string{name}).
			AddSeries("异常值", outliers, charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorTomato}))
		boxPlot.Overlap(scatter)
	}
	return boxPlot
}

// HistogramChart 期末成绩直方图
func HistogramChart(dive *report.DeepDive) *charts.Bar {
	labels := make([]string, len(dive.Histogram))
	data := make([]opts.BarData, len(dive.Histogram))
	for i, bin := range dive.Histogram {
		labels[i] = bin.Label()
		data[i] = opts.BarData{Value: bin.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOpts("final_histogram", string(dive.Major)+"专业期末成绩直方图", "期末成绩", "人数")...)
	bar.SetXAxis(labels).
		AddSeries("人数", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorRoyalBlue}))
	return bar
}

// ClusterChart 各学习模式人数
func ClusterChart(patterns []*classify.Pattern) *charts.Bar {
	labels := make([]string, len(patterns))
	count := make([]opts.BarData, len(patterns))
	final := make([]opts.LineData, len(patterns))
	for i, p := range patterns {
		labels[i] = p.Label()
		count[i] = opts.BarData{Value: p.Count}
		final[i] = opts.LineData{Value: p.AvgFinal}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOpts("learning_pattern", "学习模式识别", "学习模式", "人数")...)
	bar.SetXAxis(labels).
		AddSeries("人数", count, charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorSkyBlue}))

	line := charts.NewLine()
	line.SetXAxis(labels).
		AddSeries("平均期末成绩", final, charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorTomato}))
	bar.Overlap(line)
	return bar
}
