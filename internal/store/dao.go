package store

import (
	"fmt"
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/packagewjx/student-analyzer/pkg/server"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
	DriverNone   = "none"
)

// DefaultQueryLimit 查询历史记录时默认返回的条数
const DefaultQueryLimit = 20

var ErrHistoryDisabled = fmt.Errorf("未启用预测历史记录")

type UpdateDao interface {
	SavePrediction(r *server.PredictionRecord) error
}

type QueryDao interface {
	// 按时间倒序返回某学生的预测记录
	QueryPredictionsByStudent(studentId string, limit int) ([]*server.PredictionRecord, error)
	// 按时间倒序返回最近的预测记录
	QueryRecentPredictions(limit int) ([]*server.PredictionRecord, error)
}

type Dao interface {
	UpdateDao
	QueryDao
	Close() error
}

type daoImpl struct {
	db     *gorm.DB
	logger *log.Logger
}

var _ Dao = &daoImpl{}

// NewDao 根据driver打开数据库，driver为none时返回不保存任何记录的Dao
func NewDao(driver, dsn string) (Dao, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverNone, "":
		return noopDao{}, nil
	default:
		return nil, fmt.Errorf("不支持的数据库类型%s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "", 0), logger.Config{
			LogLevel: logger.Silent,
		}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "连接数据库错误")
	}

	// 创建表格等
	err = db.AutoMigrate(&PredictionDO{})
	if err != nil {
		return nil, errors.Wrap(err, "创建表格时出现异常")
	}

	return &daoImpl{
		db:     db,
		logger: log.New(os.Stdout, "Dao: ", log.LstdFlags|log.Lshortfile|log.Lmsgprefix),
	}, nil
}

func (d *daoImpl) SavePrediction(r *server.PredictionRecord) error {
	if r.RequestId == "" {
		return fmt.Errorf("RequestId不能为空")
	}
	do := toDO(r)
	err := d.db.Create(do).Error
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("保存预测记录出错，RequestId为%s", r.RequestId))
	}
	r.CreatedAt = do.CreatedAt
	d.logger.Printf("保存预测记录%s，学号%s，分数%.1f\n", r.RequestId, r.StudentId, r.Score)
	return nil
}

func (d *daoImpl) QueryPredictionsByStudent(studentId string, limit int) ([]*server.PredictionRecord, error) {
	doarr := make([]*PredictionDO, 0)
	err := d.db.Where("student_id = ?", studentId).
		Order("created_at desc, id desc").
		Limit(normalizeLimit(limit)).
		Find(&doarr).Error
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("查询学号%s的预测记录出错", studentId))
	}
	return convert(doarr), nil
}

func (d *daoImpl) QueryRecentPredictions(limit int) ([]*server.PredictionRecord, error) {
	doarr := make([]*PredictionDO, 0)
	err := d.db.Order("created_at desc, id desc").Limit(normalizeLimit(limit)).Find(&doarr).Error
	if err != nil {
		return nil, errors.Wrap(err, "查询预测记录出错")
	}
	return convert(doarr), nil
}

func (d *daoImpl) Close() error {
	s, err := d.db.DB()
	if err != nil {
		return err
	}
	return s.Close()
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultQueryLimit
	}
	return limit
}

func convert(doarr []*PredictionDO) []*server.PredictionRecord {
	result := make([]*server.PredictionRecord, len(doarr))
	for i, do := range doarr {
		result[i] = fromDO(do)
	}
	return result
}

type noopDao struct{}

func (noopDao) SavePrediction(*server.PredictionRecord) error {
	return nil
}

func (noopDao) QueryPredictionsByStudent(string, int) ([]*server.PredictionRecord, error) {
	return nil, ErrHistoryDisabled
}

func (noopDao) QueryRecentPredictions(int) ([]*server.PredictionRecord, error) {
	return nil, ErrHistoryDisabled
}

func (noopDao) Close() error {
	return nil
}
