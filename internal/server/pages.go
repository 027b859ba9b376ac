package server

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/packagewjx/student-analyzer/internal/chart"
	"github.com/packagewjx/student-analyzer/internal/classify"
	"github.com/packagewjx/student-analyzer/internal/feedback"
	"github.com/packagewjx/student-analyzer/internal/report"
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/packagewjx/student-analyzer/pkg/server"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"percent": func(rate float64) string {
		return fmt.Sprintf("%.0f%%", rate*100)
	},
}).ParseFS(templateFS, "templates/*.html"))

const (
	formStudentId  = "studentId"
	formGender     = "gender"
	formMajor      = "major"
	formStudyHours = "studyHours"
	formAttendance = "attendance"
	formMidterm    = "midtermScore"
	formHomework   = "homeworkRate"
)

type majorsPageData struct {
	Error           string
	Report          *report.Report
	GenderChart     chart.Snippet
	MetricChart     chart.Snippet
	AttendanceChart chart.Snippet
	BoxChart        chart.Snippet
	HistogramChart  chart.Snippet
	Patterns        []*classify.Pattern
	PatternChart    chart.Snippet
	PatternError    string
}

type predictPageData struct {
	Genders    []core.Gender
	Majors     []core.Major
	Form       map[string]string
	ModelState string
	Error      string
	Result     *server.PredictionResult
}

func (s *serverImpl) overviewPage(c *gin.Context) {
	c.HTML(http.StatusOK, "overview.html", gin.H{})
}

func (s *serverImpl) majorsPage(c *gin.Context) {
	data := &majorsPageData{}
	r, err := s.Report(c.Request.Context(), s.config.FocusMajor)
	if err != nil {
		s.logger.Printf("生成报表失败：%v\n", err)
		data.Error = err.Error()
		c.HTML(http.StatusOK, "majors.html", data)
		return
	}

	data.Report = r
	data.GenderChart = chart.RenderSnippet(chart.GenderRatioChart(r.GenderRatios))
	data.MetricChart = chart.RenderSnippet(chart.MetricMeansChart(r.MetricMeans))
	data.AttendanceChart = chart.RenderSnippet(chart.AttendanceChart(r.AttendanceRanking))
	if r.DeepDive != nil {
		data.BoxChart = chart.RenderSnippet(chart.BoxPlotChart(r.DeepDive))
		data.HistogramChart = chart.RenderSnippet(chart.HistogramChart(r.DeepDive))
	}

	patterns, err := s.Clusters(int(s.config.NumPatterns), int(s.config.NumRound))
	if err != nil {
		data.PatternError = err.Error()
	} else {
		data.Patterns = patterns
		data.PatternChart = chart.RenderSnippet(chart.ClusterChart(patterns))
	}
	c.HTML(http.StatusOK, "majors.html", data)
}

func (s *serverImpl) newPredictPageData() *predictPageData {
	return &predictPageData{
		Genders:    core.Genders,
		Majors:     core.Majors,
		Form:       map[string]string{},
		ModelState: s.predictor.State().String(),
	}
}

func (s *serverImpl) predictPage(c *gin.Context) {
	c.HTML(http.StatusOK, "predict.html", s.newPredictPageData())
}

func (s *serverImpl) predictSubmit(c *gin.Context) {
	data := s.newPredictPageData()
	for _, key := range []string{formStudentId, formGender, formMajor, formStudyHours, formAttendance, formMidterm, formHomework} {
		data.Form[key] = strings.TrimSpace(c.PostForm(key))
	}

	input, err := parseForm(data.Form)
	if err == nil {
		data.Result, err = s.Predict(c.Request.Context(), input)
	}
	if err != nil {
		s.logger.Printf("预测失败：%v\n", err)
		data.Error = err.Error()
	}
	data.ModelState = s.predictor.State().String()
	c.HTML(http.StatusOK, "predict.html", data)
}

// parseForm 空白的数值项保持为nil，由Validate报告缺失
func parseForm(form map[string]string) (*server.PredictionInput, error) {
	input := &server.PredictionInput{
		StudentId: form[formStudentId],
		Gender:    core.Gender(form[formGender]),
		Major:     core.Major(form[formMajor]),
	}
	fields := []struct {
		key    string
		column string
		dest   **float64
	}{
		{formStudyHours, core.ColumnStudyHours, &input.StudyHours},
		{formAttendance, core.ColumnAttendance, &input.Attendance},
		{formMidterm, core.ColumnMidterm, &input.MidtermScore},
		{formHomework, core.ColumnHomework, &input.HomeworkRate},
	}
	for _, f := range fields {
		v := form[f.key]
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidInput, fmt.Sprintf("%s应为数字，现在为[%s]", f.column, v))
		}
		*f.dest = &parsed
	}
	return input, nil
}

func (s *serverImpl) image(c *gin.Context) {
	img, err := s.images.Resolve(c.Request.Context(), feedback.Outcome(c.Param("outcome")))
	if err != nil {
		status := http.StatusBadGateway
		if errors.Cause(err) == feedback.ErrUnknownOutcome {
			status = http.StatusNotFound
		}
		s.logger.Printf("获取图片失败：%v\n", err)
		c.String(status, err.Error())
		return
	}
	c.Data(http.StatusOK, img.ContentType, img.Data)
}
