package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/packagewjx/student-analyzer/internal/feedback"
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(h http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func validForm() url.Values {
	return url.Values{
		"studentId":    {"2023000002"},
		"gender":       {"男"},
		"major":        {"大数据管理"},
		"studyHours":   {"20"},
		"attendance":   {"0.9"},
		"midtermScore": {"80"},
		"homeworkRate": {"0.85"},
	}
}

func TestOverviewPage(t *testing.T) {
	h := newTestServer(t, testServerConfig(t)).handler()
	w := doRequest(h, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "学生成绩分析与预测系统")
	assert.Contains(t, w.Body.String(), "学习模式识别")
}

func TestMajorsPage(t *testing.T) {
	h := newTestServer(t, testServerConfig(t)).handler()
	w := doRequest(h, http.MethodGet, "/majors", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "各专业男女性别比例")
	assert.Contains(t, body, "gender_ratio")
	assert.Contains(t, body, "final_box")
	assert.Contains(t, body, "大数据管理专业专项分析")
	assert.Contains(t, body, "75%")
	assert.NotContains(t, body, `class="error"`)
}

func TestMajorsPageFocusMajorNotFound(t *testing.T) {
	config := testServerConfig(t)
	config.FocusMajor = core.Major("考古学")
	h := newTestServer(t, config).handler()
	w := doRequest(h, http.MethodGet, "/majors", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	// 前三部分照常显示
	assert.Contains(t, body, "gender_ratio")
	assert.Contains(t, body, "metric_means")
	assert.Contains(t, body, "attendance_rank")
	assert.Contains(t, body, "learning_pattern")
	assert.Contains(t, body, `class="error"`)
	assert.Contains(t, body, "考古学")
	assert.NotContains(t, body, "final_box")
}

func TestMajorsPageDatasetNotFound(t *testing.T) {
	config := testServerConfig(t)
	config.DatasetFile = filepath.Join(t.TempDir(), "学生数据.txt")
	h := newTestServer(t, config).handler()
	w := doRequest(h, http.MethodGet, "/majors", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `class="error"`)
	assert.Contains(t, w.Body.String(), "请检查文件路径")
}

func TestPredictPage(t *testing.T) {
	h := newTestServer(t, testServerConfig(t)).handler()
	w := doRequest(h, http.MethodGet, "/predict", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "UNTRAINED")
	assert.Contains(t, w.Body.String(), "工商管理")

	w = postForm(h, validForm())
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "预测结果")
	assert.Contains(t, body, "READY")
	assert.NotContains(t, body, `class="error"`)
	assert.True(t, strings.Contains(body, "恭喜！成绩及格") || strings.Contains(body, "成绩暂未及格，继续努力"))
	// 表单保留输入
	assert.Contains(t, body, `value="0.85"`)
}

func TestPredictPageInvalid(t *testing.T) {
	h := newTestServer(t, testServerConfig(t)).handler()

	form := validForm()
	form.Set("studyHours", "")
	w := postForm(h, form)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "请填写每周学习时长（小时）")
	assert.NotContains(t, w.Body.String(), "预测结果")

	form = validForm()
	form.Set("midtermScore", "120")
	w = postForm(h, form)
	assert.Contains(t, w.Body.String(), `class="error"`)

	form = validForm()
	form.Set("attendance", "abc")
	w = postForm(h, form)
	assert.Contains(t, w.Body.String(), "应为数字")

	form = validForm()
	form.Set("studyHours", "NaN")
	form.Set("midtermScore", "nan")
	w = postForm(h, form)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "不是有效的数值")
	assert.NotContains(t, w.Body.String(), "预测结果")
}

func TestImage(t *testing.T) {
	config := testServerConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(config.AssetDir, feedback.PassImageFile), []byte("\x89PNG\r\n\x1a\n0000"), 0644))

	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer remote.Close()
	config.FailImageURL = remote.URL + "/encourage.jpg"
	h := newTestServer(t, config).handler()

	w := doRequest(h, http.MethodGet, "/images/pass", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = doRequest(h, http.MethodGet, "/images/fail", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = doRequest(h, http.MethodGet, "/images/draw", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
