package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/packagewjx/student-analyzer/internal/report"
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/packagewjx/student-analyzer/pkg/server"
	"github.com/pkg/errors"
)

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusOf(err), &server.ErrorResponse{Error: err.Error()})
}

// intQuery 读取整数参数，不存在时返回def
func intQuery(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidInput, "参数%s应为整数，现在为[%s]", key, v)
	}
	return i, nil
}

func (s *serverImpl) apiReport(c *gin.Context) {
	major := core.Major(c.DefaultQuery("major", string(s.config.FocusMajor)))
	r, err := s.Report(c.Request.Context(), major)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if r.DeepDive == nil {
		abortWithError(c, errors.Wrapf(report.ErrMajorNotFound, "专业：%s", major))
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *serverImpl) apiClusters(c *gin.Context) {
	k, err := intQuery(c, "k", int(s.config.NumPatterns))
	if err != nil {
		abortWithError(c, err)
		return
	}
	round, err := intQuery(c, "round", int(s.config.NumRound))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if k <= 0 || round <= 0 {
		abortWithError(c, errors.Wrap(ErrInvalidInput, "k与round必须大于0"))
		return
	}

	patterns, err := s.Clusters(k, round)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, patterns)
}

func (s *serverImpl) apiPredict(c *gin.Context) {
	input := &server.PredictionInput{}
	if err := c.ShouldBindJSON(input); err != nil {
		abortWithError(c, errors.Wrap(ErrInvalidInput, err.Error()))
		return
	}
	result, err := s.Predict(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *serverImpl) apiPredictions(c *gin.Context) {
	limit, err := intQuery(c, "limit", DefaultHistoryLimit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	records, err := s.QueryPredictions(c.Query("studentId"), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *serverImpl) apiModel(c *gin.Context) {
	c.JSON(http.StatusOK, s.predictor.Info())
}

func (s *serverImpl) apiTrain(c *gin.Context) {
	if !s.Retrain() {
		c.JSON(http.StatusConflict, &server.ErrorResponse{Error: "已有训练任务在等待执行"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}
