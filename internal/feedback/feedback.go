package feedback

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/packagewjx/student-analyzer/pkg/core"
)

type Outcome string

const (
	Pass = Outcome("pass")
	Fail = Outcome("fail")
)

func OutcomeOf(score float64) Outcome {
	if score >= core.PassScore {
		return Pass
	}
	return Fail
}

// 建议的最低学习习惯
const (
	SuggestStudyHours = 15
	SuggestAttendance = 80
	SuggestHomework   = 85
)

type Feedback struct {
	Passed  bool   `json:"passed"`
	Title   string `json:"title"`
	Caption string `json:"caption"`
	Advice  string `json:"advice"`
	// Image 为图片的访问路径
	Image string `json:"image"`
}

func Advise(score float64, input *core.StudentRecord) *Feedback {
	outcome := OutcomeOf(score)
	fb := &Feedback{
		Passed: outcome == Pass,
		Image:  "/images/" + string(outcome),
	}
	if fb.Passed {
		fb.Title = "Congratulations!"
		fb.Caption = "恭喜！成绩及格"
		fb.Advice = "学习建议：继续保持当前学习节奏，可适当攻克薄弱知识点，提升成绩上限。"
		return fb
	}

	fb.Title = "继续加油！"
	fb.Caption = "成绩暂未及格，继续努力"
	fb.Advice = fmt.Sprintf("学习建议：1. 增加每周学习时长（当前%s小时，建议提升至%d小时以上）；"+
		"2. 提高上课出勤率（当前%.0f%%，建议提升至%d%%以上）；"+
		"3. 确保作业完成率达标（当前%.0f%%，建议提升至%d%%以上）。",
		formatHours(input.StudyHours), SuggestStudyHours,
		input.Attendance*100, SuggestAttendance,
		input.HomeworkRate*100, SuggestHomework)
	return fb
}

// formatHours 输出最短表示，整数也保留一位小数，如20.0
func formatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
