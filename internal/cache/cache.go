// Package cache 提供带失效窗口的查询缓存。
// 同一键的并发请求共享一次在途加载（请求去重），刷新遵循 last-write-wins；
// 全部状态由互斥锁保护，读路径命中新鲜条目时不触发任何加载。
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key 缓存键：(事件, 实体或 "all", 视图判别符)
type Key struct {
	IncidentID string
	EntityID   string
	View       string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.IncidentID, k.EntityID, k.View)
}

type entry struct {
	value    any
	storedAt time.Time
}

// Cache 进程内查询缓存
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]entry
	group   singleflight.Group
	now     func() time.Time
}

// New 创建缓存实例
func New() *Cache {
	return &Cache{
		entries: make(map[Key]entry),
		now:     time.Now,
	}
}

// Do 返回键下的缓存值；条目过期或缺失时通过 load 重新加载。
// 并发调用同一键只会执行一次 load，其余调用共享结果；
// 放弃等待的调用方（ctx 取消）拿到错误即可，在途结果不被中止、只被忽略。
func (c *Cache) Do(ctx context.Context, key Key, ttl time.Duration, load func(context.Context) (any, error)) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Sub(e.storedAt) < ttl {
		return e.value, nil
	}

	ch := c.group.DoChan(key.String(), func() (any, error) {
		v, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = entry{value: v, storedAt: c.now()}
		c.mu.Unlock()
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Peek 只读取缓存，不触发加载
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Invalidate 删除单个键
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateIncident 删除某事件下的全部视图（写操作后调用）
func (c *Cache) InvalidateIncident(incidentID string) {
	c.mu.Lock()
	for k := range c.entries {
		if k.IncidentID == incidentID {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}
