package core

// 数据文件的列名
const (
	ColumnStudentId    = "学号"
	ColumnGender       = "性别"
	ColumnMajor        = "专业"
	ColumnStudyHours   = "每周学习时长（小时）"
	ColumnAttendance   = "上课出勤率"
	ColumnMidterm      = "期中考试分数"
	ColumnHomework     = "作业完成率"
	ColumnFinalScore   = "期末考试分数"
	DefaultDatasetFile = "学生数据.txt"
)

// Columns 为数据文件标准的列顺序
var Columns = []string{
	ColumnStudentId,
	ColumnGender,
	ColumnMajor,
	ColumnStudyHours,
	ColumnAttendance,
	ColumnMidterm,
	ColumnHomework,
	ColumnFinalScore,
}

type Gender string

const (
	Male   = Gender("男")
	Female = Gender("女")
)

var Genders = []Gender{Male, Female}

type Major string

const (
	MajorBusinessAdmin = Major("工商管理")
	MajorAI            = Major("人工智能")
	MajorFinance       = Major("财务管理")
	MajorECommerce     = Major("电子商务")
	MajorBigData       = Major("大数据管理")
)

// Majors 为表单中可选择的专业，顺序与页面下拉框一致
var Majors = []Major{MajorBusinessAdmin, MajorAI, MajorFinance, MajorECommerce, MajorBigData}

// PassScore 及格线
const PassScore = 60.0

const LineBreak = '\n'

const Splitter = ","

type StudentRecord struct {
	StudentId    string  `json:"studentId"`
	Gender       Gender  `json:"gender"`
	Major        Major   `json:"major"`
	StudyHours   float64 `json:"studyHours"`   // 每周学习时长（小时）
	Attendance   float64 `json:"attendance"`   // 出勤率，范围[0,1]
	MidtermScore float64 `json:"midtermScore"` // 范围[0,100]
	HomeworkRate float64 `json:"homeworkRate"` // 作业完成率，范围[0,1]
	FinalScore   float64 `json:"finalScore"`   // 预测目标
}

func IsValidGender(g Gender) bool {
	for _, gender := range Genders {
		if gender == g {
			return true
		}
	}
	return false
}

func IsValidMajor(m Major) bool {
	for _, major := range Majors {
		if major == m {
			return true
		}
	}
	return false
}
