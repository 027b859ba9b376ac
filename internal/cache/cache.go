package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/packagewjx/student-analyzer/internal/report"
	"github.com/packagewjx/student-analyzer/pkg/core"
)

var ErrCacheMiss = fmt.Errorf("缓存不存在")

// ReportCache 缓存聚合报表。数据文件内容不变时报表不变，因此不需要主动失效
type ReportCache interface {
	Get(ctx context.Context, key string) (*report.Report, error)
	Set(ctx context.Context, key string, r *report.Report) error
}

// Key 由数据文件指纹与专项分析专业组成
func Key(fingerprint string, focusMajor core.Major) string {
	return fingerprint + ":" + string(focusMajor)
}

type memoryCache struct {
	lock    sync.RWMutex
	reports map[string]*report.Report
}

func NewMemoryCache() ReportCache {
	return &memoryCache{reports: make(map[string]*report.Report)}
}

func (m *memoryCache) Get(_ context.Context, key string) (*report.Report, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	r, ok := m.reports[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return r, nil
}

func (m *memoryCache) Set(_ context.Context, key string, r *report.Report) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.reports[key] = r
	return nil
}
