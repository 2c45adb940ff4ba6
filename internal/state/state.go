// Package state 保存会话期的看板选择状态（当前事件/实体、历史、地图视口）。
// 显式注入、只通过动作方法修改，不提供包级单例；进程生命周期内有效，不落盘。
package state

import "sync"

// historyLimit 最近选择历史的保留条数
const historyLimit = 10

// Viewport 地图视口
type Viewport struct {
	CenterLat float64 `json:"centerLat"`
	CenterLng float64 `json:"centerLng"`
	Zoom      int     `json:"zoom"`
	// Bounds 西南角/东北角 [swLat, swLng, neLat, neLng]
	Bounds [4]float64 `json:"bounds"`
}

// Selection 当前选择状态的只读快照
type Selection struct {
	IncidentID      string   `json:"incidentId,omitempty"`
	EntityID        string   `json:"entityId,omitempty"`
	IncludeAll      bool     `json:"includeAll"`
	RecentIncidents []string `json:"recentIncidents"`
	RecentEntities  []string `json:"recentEntities"`
	Viewport        Viewport `json:"viewport"`
}

// Store 选择状态存储
type Store struct {
	mu              sync.RWMutex
	incidentID      string
	entityID        string
	includeAll      bool
	recentIncidents []string
	recentEntities  []string
	viewport        Viewport
}

// NewStore 创建空的选择状态存储
func NewStore() *Store {
	return &Store{}
}

// Snapshot 返回当前状态的拷贝
func (s *Store) Snapshot() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Selection{
		IncidentID:      s.incidentID,
		EntityID:        s.entityID,
		IncludeAll:      s.includeAll,
		RecentIncidents: append([]string(nil), s.recentIncidents...),
		RecentEntities:  append([]string(nil), s.recentEntities...),
		Viewport:        s.viewport,
	}
}

// SelectIncident 选中事件并清空实体选择；历史去重后前插
func (s *Store) SelectIncident(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incidentID = id
	s.entityID = ""
	s.recentIncidents = pushRecent(s.recentIncidents, id)
}

// SelectEntity 选中实体（关闭 include-all）
func (s *Store) SelectEntity(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entityID = id
	s.includeAll = false
	s.recentEntities = pushRecent(s.recentEntities, id)
}

// SetIncludeAll 切换「全部实体」标记；开启时清空单实体选择
func (s *Store) SetIncludeAll(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.includeAll = v
	if v {
		s.entityID = ""
	}
}

// SetViewport 记录地图视口
func (s *Store) SetViewport(v Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = v
}

// Clear 清空全部选择（历史保留）
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incidentID = ""
	s.entityID = ""
	s.includeAll = false
}

func pushRecent(list []string, id string) []string {
	if id == "" {
		return list
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, id)
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	if len(out) > historyLimit {
		out = out[:historyLimit]
	}
	return out
}
