package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/packagewjx/student-analyzer/internal/cache"
	"github.com/packagewjx/student-analyzer/internal/classify"
	"github.com/packagewjx/student-analyzer/internal/feedback"
	"github.com/packagewjx/student-analyzer/internal/model"
	"github.com/packagewjx/student-analyzer/internal/report"
	"github.com/packagewjx/student-analyzer/internal/store"
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
)

const (
	DefaultPort         = 8501
	DefaultNumPatterns  = classify.DefaultNumPatterns
	DefaultNumRound     = classify.KMeansDefaultRound
	DefaultImageTimeout = feedback.DefaultFetchTimeout
	DefaultCacheTTL     = cache.DefaultTTL
	DefaultHistoryLimit = store.DefaultQueryLimit
)

const shutdownTimeout = 10 * time.Second

type ServerConfig struct {
	Port          uint16        // 本服务器监听端口
	DatasetFile   string        // 学生数据文件
	ModelFile     string        // 模型文件
	FeatureFile   string        // 特征列文件
	FocusMajor    core.Major    // 专项分析的专业
	NumPatterns   uint          // 学习模式数量
	NumRound      uint          // 聚类迭代轮次
	AssetDir      string        // 本地图片目录
	PassImageURL  string        // 本地图片不存在时使用的网络图片
	FailImageURL  string        // 同上
	ImageTimeout  time.Duration // 获取网络图片的超时时间
	RedisAddr     string        // 为空时使用内存缓存报表
	RedisDB       int
	CacheTTL      time.Duration
	HistoryDriver string // mysql、sqlite或none
	HistoryDSN    string
}

func (s ServerConfig) String() string {
	marshal, _ := json.Marshal(s)
	return string(marshal)
}

func (config *ServerConfig) Complete() error {
	if config.Port < 1024 {
		return fmt.Errorf("端口号应该在1024到65535之间，现在为%d", config.Port)
	}
	if config.NumRound == 0 {
		return fmt.Errorf("聚类轮次不能为0")
	}
	if config.NumPatterns == 0 {
		return fmt.Errorf("学习模式数目不能为0")
	}
	if config.ImageTimeout <= 0 {
		return fmt.Errorf("图片获取超时时间必须大于0，现在为%v", config.ImageTimeout)
	}
	if config.CacheTTL < 0 {
		return fmt.Errorf("缓存过期时间不能为负数")
	}

	if config.DatasetFile == "" {
		config.DatasetFile = core.DefaultDatasetFile
	}
	if config.ModelFile == "" {
		config.ModelFile = model.DefaultModelFile
	}
	if config.FeatureFile == "" {
		config.FeatureFile = model.DefaultFeatureFile
	}
	if config.FocusMajor == "" {
		config.FocusMajor = report.DefaultFocusMajor
	}
	if config.AssetDir == "" {
		config.AssetDir = feedback.DefaultAssetDir
	}
	if config.HistoryDriver == "" {
		config.HistoryDriver = store.DriverNone
	}
	return nil
}

type Server interface {
	Start() error
}

func NewServer(config *ServerConfig) (Server, error) {
	if err := config.Complete(); err != nil {
		return nil, err
	}

	dao, err := store.NewDao(config.HistoryDriver, config.HistoryDSN)
	if err != nil {
		return nil, err
	}

	var reportCache cache.ReportCache
	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr, DB: config.RedisDB})
		reportCache = cache.NewRedisCache(client, config.CacheTTL)
	} else {
		reportCache = cache.NewMemoryCache()
	}

	return newServer(config, dao, reportCache), nil
}

func newServer(config *ServerConfig, dao store.Dao, reportCache cache.ReportCache) *serverImpl {
	return &serverImpl{
		config: config,
		dao:    dao,
		cache:  reportCache,
		predictor: model.NewPredictor(model.Config{
			DatasetFile: config.DatasetFile,
			ModelFile:   config.ModelFile,
			FeatureFile: config.FeatureFile,
		}),
		images: feedback.NewImageResolver(&feedback.ResolverConfig{
			AssetDir:     config.AssetDir,
			PassImageURL: config.PassImageURL,
			FailImageURL: config.FailImageURL,
			Timeout:      config.ImageTimeout,
		}),
		logger:       log.New(os.Stdout, "student server: ", log.LstdFlags|log.Lshortfile|log.Lmsgprefix),
		executeTrain: make(chan struct{}, 1),
	}
}

type serverImpl struct {
	config       *ServerConfig
	dao          store.Dao
	cache        cache.ReportCache
	predictor    *model.Predictor
	images       *feedback.ImageResolver
	logger       *log.Logger
	executeTrain chan struct{}
}

func (s *serverImpl) Start() error {
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() {
		_ = s.dao.Close()
	}()

	s.logger.Printf("服务器启动。配置：%v\n", s.config)

	go s.trainer(rootCtx)

	server := s.buildServer()
	errCh := make(chan error)
	go s.serve(server, errCh)

	// 注册信号接收器
	termSigChan := make(chan os.Signal, 1)
	signal.Notify(termSigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-termSigChan:
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		err := server.Shutdown(shutdownCtx)
		if err != nil {
			return errors.Wrap(err, "关闭HTTP服务器失败")
		}
	case err := <-errCh:
		return errors.Wrap(err, "HTTP服务器启动失败")
	}

	// 等待HTTP服务器结束
	err := <-errCh
	if err != nil {
		return errors.Wrap(err, "HTTP关闭出现错误")
	}

	return nil
}

func (s *serverImpl) buildServer() *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.handler(),
	}
}

func (s *serverImpl) handler() http.Handler {
	engine := gin.New()
	engine.Use(gin.LoggerWithWriter(s.logger.Writer()), gin.Recovery())
	engine.SetHTMLTemplate(pageTemplates)

	engine.GET("/", s.overviewPage)
	engine.GET("/majors", s.majorsPage)
	engine.GET("/predict", s.predictPage)
	engine.POST("/predict", s.predictSubmit)
	engine.GET("/images/:outcome", s.image)
	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := engine.Group("/api")
	api.GET("/report", s.apiReport)
	api.GET("/clusters", s.apiClusters)
	api.POST("/predict", s.apiPredict)
	api.GET("/predictions", s.apiPredictions)
	api.GET("/model", s.apiModel)
	api.POST("/model/train", s.apiTrain)

	return engine
}

func (s *serverImpl) serve(server *http.Server, errCh chan<- error) {
	s.logger.Printf("HTTP服务器启动，端口%d\n", s.config.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		errCh <- err
		return
	}

	s.logger.Printf("HTTP服务器结束")
	errCh <- nil
}
