package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/packagewjx/student-analyzer/pkg/server"
	"github.com/pkg/errors"
)

const DefaultApiHostBaseUrl = "http://localhost:8501"

const defaultTimeout = 30 * time.Second

func NewApiClient(baseUrl string) server.API {
	if baseUrl == "" {
		baseUrl = DefaultApiHostBaseUrl
	}
	return &apiClient{
		baseUrl: baseUrl,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

var _ server.API = &apiClient{}

type apiClient struct {
	baseUrl string
	client  *http.Client
}

func (a *apiClient) Predict(input *server.PredictionInput) (*server.PredictionResult, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, errors.Wrap(err, "序列化输入失败")
	}
	response, err := a.client.Post(a.baseUrl+"/api/predict", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "请求时出现异常")
	}

	dest := &server.PredictionResult{}
	if err = decodeResponse(response, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

func (a *apiClient) QueryPredictions(studentId string, limit int) ([]*server.PredictionRecord, error) {
	query := url.Values{}
	if studentId != "" {
		query.Set("studentId", studentId)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	response, err := a.client.Get(a.baseUrl + "/api/predictions?" + query.Encode())
	if err != nil {
		return nil, errors.Wrap(err, "请求时出现异常")
	}

	dest := make([]*server.PredictionRecord, 0)
	if err = decodeResponse(response, &dest); err != nil {
		return nil, err
	}
	return dest, nil
}

func decodeResponse(response *http.Response, dest interface{}) error {
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return errors.Wrap(err, "读取时出现异常")
	}

	if response.StatusCode != http.StatusOK {
		e := &server.ErrorResponse{}
		if json.Unmarshal(body, e) == nil && e.Error != "" {
			return fmt.Errorf("服务器返回错误，状态码%d：%s", response.StatusCode, e.Error)
		}
		return fmt.Errorf("服务器返回错误，状态码%d", response.StatusCode)
	}

	err = json.Unmarshal(body, dest)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("解析json异常，json为\n%s", string(body)))
	}
	return nil
}
