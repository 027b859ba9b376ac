package store

import (
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/packagewjx/student-analyzer/pkg/server"
)

func toDO(r *server.PredictionRecord) *PredictionDO {
	return &PredictionDO{
		RequestId:    r.RequestId,
		StudentId:    r.StudentId,
		Gender:       string(r.Gender),
		Major:        string(r.Major),
		StudyHours:   r.StudyHours,
		Attendance:   r.Attendance,
		MidtermScore: r.MidtermScore,
		HomeworkRate: r.HomeworkRate,
		Score:        r.Score,
		Passed:       r.Passed,
	}
}

func fromDO(do *PredictionDO) *server.PredictionRecord {
	return &server.PredictionRecord{
		RequestId:    do.RequestId,
		StudentId:    do.StudentId,
		Gender:       core.Gender(do.Gender),
		Major:        core.Major(do.Major),
		StudyHours:   do.StudyHours,
		Attendance:   do.Attendance,
		MidtermScore: do.MidtermScore,
		HomeworkRate: do.HomeworkRate,
		Score:        do.Score,
		Passed:       do.Passed,
		CreatedAt:    do.CreatedAt,
	}
}
