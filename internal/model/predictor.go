package model

import (
	"context"
	"encoding/gob"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/packagewjx/student-analyzer/internal/dataset"
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
)

const (
	DefaultModelFile   = "grade_prediction_model.gob"
	DefaultFeatureFile = "feature_columns.gob"
)

type State int

const (
	Untrained State = iota
	Ready
)

func (s State) String() string {
	switch s {
	case Ready:
		return "READY"
	default:
		return "UNTRAINED"
	}
}

type Config struct {
	DatasetFile string
	ModelFile   string
	FeatureFile string
}

// Info 模型状态信息
type Info struct {
	State          string    `json:"state"`
	ModelFile      string    `json:"modelFile"`
	FeatureFile    string    `json:"featureFile"`
	FeatureColumns []string  `json:"featureColumns,omitempty"`
	NumTrees       int       `json:"numTrees,omitempty"`
	NumSamples     int       `json:"numSamples,omitempty"`
	TrainedAt      time.Time `json:"trainedAt,omitempty"`
}

// Predictor 管理模型文件。两个模型文件都存在时为Ready，否则在第一次Load时训练。
// 数据文件变化不会触发重新训练，删除模型文件才会。
type Predictor struct {
	config  Config
	mu      sync.Mutex
	cached  *Pipeline
	modTime time.Time
	logger  *log.Logger
}

func NewPredictor(config Config) *Predictor {
	if config.DatasetFile == "" {
		config.DatasetFile = core.DefaultDatasetFile
	}
	if config.ModelFile == "" {
		config.ModelFile = DefaultModelFile
	}
	if config.FeatureFile == "" {
		config.FeatureFile = DefaultFeatureFile
	}
	return &Predictor{
		config: config,
		logger: log.New(os.Stdout, "predictor: ", log.LstdFlags|log.Lshortfile|log.Lmsgprefix),
	}
}

func (p *Predictor) State() State {
	if fileExists(p.config.ModelFile) && fileExists(p.config.FeatureFile) {
		return Ready
	}
	return Untrained
}

// Load 返回可用的模型，模型文件不存在时先训练
func (p *Predictor) Load(ctx context.Context) (*Pipeline, error) {
	return p.Train(ctx, false)
}

// Train 在模型文件不存在或force为true时训练并保存模型，否则从文件读取
func (p *Predictor) Train(ctx context.Context, force bool) (*Pipeline, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !force && p.State() == Ready {
		return p.loadArtifacts()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.logger.Printf("正在使用%s训练模型\n", p.config.DatasetFile)
	records, err := dataset.LoadFile(p.config.DatasetFile)
	if err != nil {
		return nil, err
	}
	pipeline := NewPipeline()
	if err = pipeline.Fit(records); err != nil {
		return nil, errors.Wrap(err, "训练模型失败")
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	if err = writeAtomic(p.config.ModelFile, pipeline); err != nil {
		return nil, errors.Wrap(err, "保存模型失败")
	}
	if err = writeAtomic(p.config.FeatureFile, pipeline.FeatureColumns); err != nil {
		return nil, errors.Wrap(err, "保存特征列失败")
	}
	p.logger.Printf("模型训练完成，样本数%d，特征数%d\n", pipeline.NumSamples, len(pipeline.FeatureColumns))

	if stat, err := os.Stat(p.config.ModelFile); err == nil {
		p.modTime = stat.ModTime()
		p.cached = pipeline
	}
	return pipeline, nil
}

func (p *Predictor) Info() *Info {
	info := &Info{
		State:       p.State().String(),
		ModelFile:   p.config.ModelFile,
		FeatureFile: p.config.FeatureFile,
	}
	if p.State() != Ready {
		return info
	}
	p.mu.Lock()
	pipeline, err := p.loadArtifacts()
	p.mu.Unlock()
	if err != nil {
		p.logger.Printf("读取模型信息失败：%v\n", err)
		return info
	}
	info.FeatureColumns = pipeline.FeatureColumns
	info.NumTrees = len(pipeline.Forest.Trees)
	info.NumSamples = pipeline.NumSamples
	info.TrainedAt = pipeline.TrainedAt
	return info
}

// loadArtifacts 读取模型文件，文件未修改时使用内存中的模型。调用者需持有锁
func (p *Predictor) loadArtifacts() (*Pipeline, error) {
	stat, err := os.Stat(p.config.ModelFile)
	if err != nil {
		return nil, errors.Wrap(err, "读取模型文件失败")
	}
	if p.cached != nil && stat.ModTime().Equal(p.modTime) {
		return p.cached, nil
	}

	pipeline := &Pipeline{}
	if err = readGob(p.config.ModelFile, pipeline); err != nil {
		return nil, errors.Wrap(err, "读取模型失败")
	}
	features := make([]string, 0)
	if err = readGob(p.config.FeatureFile, &features); err != nil {
		return nil, errors.Wrap(err, "读取特征列失败")
	}
	if pipeline.Preprocessor == nil || pipeline.Forest == nil {
		return nil, errors.New("模型文件内容不完整")
	}
	if !reflect.DeepEqual(features, pipeline.Preprocessor.FeatureNames()) {
		return nil, errors.New("特征列文件与模型不一致")
	}
	pipeline.FeatureColumns = features

	p.cached = pipeline
	p.modTime = stat.ModTime()
	return pipeline, nil
}

func fileExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}

// writeAtomic 先写入临时文件再重命名，读者只会看到完整的文件或没有文件
func writeAtomic(path string, value interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if err = encodeGob(tmp, value); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func encodeGob(out io.Writer, value interface{}) error {
	return gob.NewEncoder(out).Encode(value)
}

func readGob(path string, value interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(value)
}
