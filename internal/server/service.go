package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/packagewjx/student-analyzer/internal/cache"
	"github.com/packagewjx/student-analyzer/internal/classify"
	"github.com/packagewjx/student-analyzer/internal/dataset"
	"github.com/packagewjx/student-analyzer/internal/feedback"
	"github.com/packagewjx/student-analyzer/internal/preprocess"
	"github.com/packagewjx/student-analyzer/internal/report"
	"github.com/packagewjx/student-analyzer/internal/store"
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/packagewjx/student-analyzer/pkg/server"
	"github.com/pkg/errors"
)

var ErrInvalidInput = server.ErrInvalidInput

// Report 返回聚合报表。数据文件内容不变时使用缓存，缓存出错时直接重新计算
func (s *serverImpl) Report(ctx context.Context, focusMajor core.Major) (*report.Report, error) {
	fingerprint, err := dataset.Fingerprint(s.config.DatasetFile)
	if err != nil {
		return nil, err
	}
	key := cache.Key(fingerprint, focusMajor)

	r, err := s.cache.Get(ctx, key)
	if err == nil {
		return r, nil
	} else if errors.Cause(err) != cache.ErrCacheMiss {
		s.logger.Printf("读取报表缓存失败：%v\n", err)
	}

	records, err := dataset.LoadFile(s.config.DatasetFile)
	if err != nil {
		return nil, err
	}
	r = report.Build(records, focusMajor)
	if err = s.cache.Set(ctx, key, r); err != nil {
		s.logger.Printf("写入报表缓存失败：%v\n", err)
	}
	return r, nil
}

func (s *serverImpl) Clusters(numPatterns, round int) ([]*classify.Pattern, error) {
	records, err := dataset.LoadFile(s.config.DatasetFile)
	if err != nil {
		return nil, err
	}
	return classify.ClusterStudents(records, numPatterns, round)
}

// Predict 校验输入，必要时训练模型，预测并记录历史
func (s *serverImpl) Predict(ctx context.Context, input *server.PredictionInput) (*server.PredictionResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	pipeline, err := s.predictor.Load(ctx)
	if err != nil {
		return nil, err
	}
	record := input.Record()
	score, err := pipeline.Predict(record)
	if err != nil {
		return nil, err
	}

	fb := feedback.Advise(score, record)
	result := &server.PredictionResult{
		RequestId: uuid.New().String(),
		Score:     score,
		Passed:    fb.Passed,
		Feedback: &server.Feedback{
			Title:   fb.Title,
			Caption: fb.Caption,
			Advice:  fb.Advice,
			Image:   fb.Image,
		},
	}

	err = s.dao.SavePrediction(&server.PredictionRecord{
		RequestId:    result.RequestId,
		StudentId:    record.StudentId,
		Gender:       record.Gender,
		Major:        record.Major,
		StudyHours:   record.StudyHours,
		Attendance:   record.Attendance,
		MidtermScore: record.MidtermScore,
		HomeworkRate: record.HomeworkRate,
		Score:        result.Score,
		Passed:       result.Passed,
	})
	if err != nil {
		s.logger.Printf("保存预测记录失败：%v\n", err)
	}
	return result, nil
}

func (s *serverImpl) QueryPredictions(studentId string, limit int) ([]*server.PredictionRecord, error) {
	if studentId == "" {
		return s.dao.QueryRecentPredictions(limit)
	}
	return s.dao.QueryPredictionsByStudent(studentId, limit)
}

// statusOf 将错误转换为HTTP状态码
func statusOf(err error) int {
	switch errors.Cause(err) {
	case server.ErrInvalidInput, preprocess.ErrUnknownCategory, classify.ErrInvalidNumClass:
		return http.StatusBadRequest
	case dataset.ErrDatasetNotFound, report.ErrMajorNotFound, store.ErrHistoryDisabled, feedback.ErrUnknownOutcome:
		return http.StatusNotFound
	case context.Canceled, context.DeadlineExceeded:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
