package server

import (
	"math"
	"testing"

	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func float(f float64) *float64 {
	return &f
}

func TestPredictionInput_Validate(t *testing.T) {
	valid := func() *PredictionInput {
		return &PredictionInput{
			Gender:       core.Male,
			Major:        core.MajorECommerce,
			StudyHours:   float(0),
			Attendance:   float(1),
			MidtermScore: float(100),
			HomeworkRate: float(0),
		}
	}
	assert.NoError(t, valid().Validate())
	record := valid().Record()
	assert.Equal(t, 1.0, record.Attendance)
	assert.Equal(t, core.MajorECommerce, record.Major)

	cases := []func(in *PredictionInput){
		func(in *PredictionInput) { in.Gender = "" },
		func(in *PredictionInput) { in.Gender = "其他" },
		func(in *PredictionInput) { in.Major = "" },
		func(in *PredictionInput) { in.Major = "考古学" },
		func(in *PredictionInput) { in.StudyHours = nil },
		func(in *PredictionInput) { in.StudyHours = float(60.5) },
		func(in *PredictionInput) { in.Attendance = float(-0.1) },
		func(in *PredictionInput) { in.MidtermScore = float(101) },
		func(in *PredictionInput) { in.HomeworkRate = nil },
		func(in *PredictionInput) { in.StudyHours = float(math.NaN()) },
		func(in *PredictionInput) { in.Attendance = float(math.NaN()) },
		func(in *PredictionInput) { in.MidtermScore = float(math.Inf(1)) },
		func(in *PredictionInput) { in.HomeworkRate = float(math.Inf(-1)) },
	}
	for i, c := range cases {
		in := valid()
		c(in)
		err := in.Validate()
		assert.Equal(t, ErrInvalidInput, errors.Cause(err), "第%d个用例", i)
	}
}
