package model

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/packagewjx/student-analyzer/internal/dataset"
	"github.com/packagewjx/student-analyzer/internal/preprocess"
	"github.com/packagewjx/student-analyzer/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDataset = "../../test/data/students.txt"

func testConfig(t *testing.T) Config {
	dir := t.TempDir()
	return Config{
		DatasetFile: testDataset,
		ModelFile:   filepath.Join(dir, DefaultModelFile),
		FeatureFile: filepath.Join(dir, DefaultFeatureFile),
	}
}

func sampleInput() *core.StudentRecord {
	return &core.StudentRecord{
		Gender:       core.Male,
		Major:        core.MajorBigData,
		StudyHours:   20,
		Attendance:   0.9,
		MidtermScore: 80,
		HomeworkRate: 0.85,
	}
}

func TestPipeline(t *testing.T) {
	records, err := dataset.LoadFile(testDataset)
	require.NoError(t, err)

	p := NewPipeline()
	require.NoError(t, p.Fit(records))
	assert.Equal(t, 9, len(p.FeatureColumns))
	assert.Equal(t, len(records), p.NumSamples)

	score, err := p.Predict(sampleInput())
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)

	/* 同一模型相同输入结果相同 */
	again, err := p.Predict(sampleInput())
	assert.NoError(t, err)
	assert.Equal(t, score, again)

	/* 相同数据与种子训练两次结果相同 */
	another := NewPipeline()
	require.NoError(t, another.Fit(records))
	for _, r := range records[:10] {
		s1, _ := p.Predict(r)
		s2, _ := another.Predict(r)
		assert.Equal(t, s1, s2)
	}

	/* 未知类别 */
	input := sampleInput()
	input.Major = core.Major("考古学")
	_, err = p.Predict(input)
	assert.Equal(t, preprocess.ErrUnknownCategory, errors.Cause(err))

	assert.Error(t, NewPipeline().Fit(nil))
}

func TestPredictor(t *testing.T) {
	config := testConfig(t)
	predictor := NewPredictor(config)
	assert.Equal(t, Untrained, predictor.State())
	assert.Equal(t, "UNTRAINED", predictor.Info().State)

	p, err := predictor.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Ready, predictor.State())
	assert.FileExists(t, config.ModelFile)
	assert.FileExists(t, config.FeatureFile)
	score, err := p.Predict(sampleInput())
	require.NoError(t, err)

	/* 第二次读取使用缓存 */
	cached, err := predictor.Load(context.Background())
	assert.NoError(t, err)
	assert.Same(t, p, cached)

	/* 新的Predictor从文件读取 */
	fromDisk, err := NewPredictor(config).Load(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, p, fromDisk)
	diskScore, err := fromDisk.Predict(sampleInput())
	assert.NoError(t, err)
	assert.Equal(t, score, diskScore)

	info := predictor.Info()
	assert.Equal(t, "READY", info.State)
	assert.Equal(t, 100, info.NumTrees)
	assert.Equal(t, 80, info.NumSamples)

	/* 删除模型文件后重新训练 */
	require.NoError(t, os.Remove(config.ModelFile))
	assert.Equal(t, Untrained, predictor.State())
	retrained, err := predictor.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Ready, predictor.State())
	retrainedScore, err := retrained.Predict(sampleInput())
	assert.NoError(t, err)
	assert.Equal(t, score, retrainedScore)
}

func TestPredictorForceTrain(t *testing.T) {
	predictor := NewPredictor(testConfig(t))
	p1, err := predictor.Train(context.Background(), false)
	require.NoError(t, err)
	p2, err := predictor.Train(context.Background(), false)
	require.NoError(t, err)
	assert.Same(t, p1, p2)
	p3, err := predictor.Train(context.Background(), true)
	require.NoError(t, err)
	assert.NotSame(t, p1, p3)
}

func TestPredictorConcurrentLoad(t *testing.T) {
	predictor := NewPredictor(testConfig(t))
	wg := sync.WaitGroup{}
	results := make([]*Pipeline, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := predictor.Load(context.Background())
			assert.NoError(t, err)
			results[i] = p
		}(i)
	}
	wg.Wait()
	for _, p := range results[1:] {
		assert.Same(t, results[0], p)
	}
}

func TestPredictorDatasetNotFound(t *testing.T) {
	config := testConfig(t)
	config.DatasetFile = filepath.Join(t.TempDir(), "不存在.txt")
	predictor := NewPredictor(config)
	_, err := predictor.Load(context.Background())
	assert.Equal(t, dataset.ErrDatasetNotFound, errors.Cause(err))
	assert.Equal(t, Untrained, predictor.State())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewPredictor(testConfig(t)).Load(ctx)
	assert.Equal(t, context.Canceled, err)
}

func TestPredictorCorruptArtifact(t *testing.T) {
	config := testConfig(t)
	require.NoError(t, os.WriteFile(config.ModelFile, []byte("abc"), 0644))
	require.NoError(t, os.WriteFile(config.FeatureFile, []byte("abc"), 0644))
	predictor := NewPredictor(config)
	assert.Equal(t, Ready, predictor.State())
	_, err := predictor.Load(context.Background())
	assert.Error(t, err)
}
