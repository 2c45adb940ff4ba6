package severity

import (
	"context"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/situation_dashboard/internal/conf"
	"github.com/iWorld-y/situation_dashboard/internal/domain"
)

// Table 远端严重度的进程内快照。
// Snapshot 永不阻塞：拿到什么返回什么；MaybeRefresh 在后台逐字段拉取远端值，
// 每个字段每轮只尝试一次，下一次评估才会看到新值（异步增强、同步渲染）。
type Table struct {
	client  *Client
	minGap  time.Duration
	log     *log.Helper
	timeout time.Duration

	mu          sync.RWMutex
	values      map[domain.Category]map[string]domain.Severity
	lastRefresh time.Time
	refreshing  bool
}

// NewTable 创建严重度快照表；client 为 nil 时表恒为空
func NewTable(client *Client, c *conf.Severity, logger log.Logger) *Table {
	minGap := 5 * time.Minute
	timeout := 30 * time.Second
	if c != nil && c.Refresh != "" {
		if d, err := time.ParseDuration(c.Refresh); err == nil {
			minGap = d
		}
	}
	return &Table{
		client:  client,
		minGap:  minGap,
		timeout: timeout,
		log:     log.NewHelper(logger),
		values:  make(map[domain.Category]map[string]domain.Severity),
	}
}

// Snapshot 返回某类别当前的预计算严重度映射；无数据时返回 nil
func (t *Table) Snapshot(c domain.Category) map[string]domain.Severity {
	t.mu.RLock()
	defer t.mu.RUnlock()
	m := t.values[c]
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]domain.Severity, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MaybeRefresh 视需要在后台刷新快照。
// 距上次刷新不足 minGap、已有刷新在跑、或未配置远端服务时直接返回
func (t *Table) MaybeRefresh() {
	if t.client == nil {
		return
	}

	t.mu.Lock()
	if t.refreshing || time.Since(t.lastRefresh) < t.minGap {
		t.mu.Unlock()
		return
	}
	t.refreshing = true
	t.mu.Unlock()

	go t.refresh()
}

func (t *Table) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	fetched := make(map[domain.Category]map[string]domain.Severity)
	for _, c := range domain.Categories() {
		for _, f := range domain.Catalog(c).GapIndicators {
			s, ok := t.client.FieldSeverity(ctx, c, f.Key)
			if !ok {
				continue
			}
			if fetched[c] == nil {
				fetched[c] = make(map[string]domain.Severity)
			}
			fetched[c][f.Key] = s
		}
	}

	t.mu.Lock()
	// last-write-wins：只覆盖拿到新值的字段，保留上一轮的其余条目
	for c, m := range fetched {
		if t.values[c] == nil {
			t.values[c] = make(map[string]domain.Severity)
		}
		for k, v := range m {
			t.values[c][k] = v
		}
	}
	t.lastRefresh = time.Now()
	t.refreshing = false
	t.mu.Unlock()

	if len(fetched) > 0 {
		t.log.Debugf("severity table refreshed: %d categories updated", len(fetched))
	}
}
