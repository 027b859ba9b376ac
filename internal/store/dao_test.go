package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/packagewjx/student-analyzer/pkg/server"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDao(t *testing.T) Dao {
	dao, err := NewDao(DriverSQLite, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = dao.Close()
	})
	return dao
}

func TestNewDao(t *testing.T) {
	_, err := NewDao("oracle", "")
	assert.Error(t, err)

	dao, err := NewDao(DriverNone, "")
	assert.NoError(t, err)
	assert.NoError(t, dao.SavePrediction(&server.PredictionRecord{RequestId: "1"}))
	_, err = dao.QueryRecentPredictions(10)
	assert.Equal(t, ErrHistoryDisabled, errors.Cause(err))
}

func TestDao_SavePrediction(t *testing.T) {
	dao := newTestDao(t)
	for i := 0; i < 5; i++ {
		studentId := "2023000001"
		if i%2 == 1 {
			studentId = "2023000002"
		}
		r := &server.PredictionRecord{
			RequestId:    fmt.Sprintf("req-%d", i),
			StudentId:    studentId,
			Gender:       core.Male,
			Major:        core.MajorAI,
			StudyHours:   float64(10 + i),
			Attendance:   0.9,
			MidtermScore: 80,
			HomeworkRate: 0.85,
			Score:        float64(55 + i*2),
			Passed:       55+i*2 >= 60,
		}
		require.NoError(t, dao.SavePrediction(r))
		assert.False(t, r.CreatedAt.IsZero())
	}

	/* RequestId重复 */
	assert.Error(t, dao.SavePrediction(&server.PredictionRecord{RequestId: "req-0"}))
	assert.Error(t, dao.SavePrediction(&server.PredictionRecord{}))

	records, err := dao.QueryPredictionsByStudent("2023000001", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, len(records))
	assert.Equal(t, "req-4", records[0].RequestId)
	assert.Equal(t, core.MajorAI, records[0].Major)
	assert.Equal(t, 63.0, records[0].Score)
	assert.True(t, records[0].Passed)

	records, err = dao.QueryPredictionsByStudent("2023000009", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, len(records))

	records, err = dao.QueryRecentPredictions(2)
	require.NoError(t, err)
	assert.Equal(t, 2, len(records))
	assert.Equal(t, "req-4", records[0].RequestId)
	assert.Equal(t, "req-3", records[1].RequestId)
}
