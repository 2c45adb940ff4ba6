package state

import (
	"fmt"
	"testing"
)

func TestSelectIncident_ResetsEntity(t *testing.T) {
	s := NewStore()
	s.SelectIncident("inc-1")
	s.SelectEntity("ent-1")
	s.SelectIncident("inc-2")

	snap := s.Snapshot()
	if snap.IncidentID != "inc-2" {
		t.Errorf("IncidentID = %s, want inc-2", snap.IncidentID)
	}
	if snap.EntityID != "" {
		t.Errorf("EntityID = %s, want empty after incident switch", snap.EntityID)
	}
}

func TestRecentHistory_DedupAndBound(t *testing.T) {
	s := NewStore()
	for i := 0; i < 15; i++ {
		s.SelectIncident(fmt.Sprintf("inc-%d", i))
	}
	s.SelectIncident("inc-3")

	snap := s.Snapshot()
	if len(snap.RecentIncidents) != historyLimit {
		t.Fatalf("history length = %d, want %d", len(snap.RecentIncidents), historyLimit)
	}
	if snap.RecentIncidents[0] != "inc-3" {
		t.Errorf("history[0] = %s, want most recent inc-3", snap.RecentIncidents[0])
	}
	seen := map[string]bool{}
	for _, id := range snap.RecentIncidents {
		if seen[id] {
			t.Errorf("duplicate history entry %s", id)
		}
		seen[id] = true
	}
}

func TestIncludeAll_ClearsEntity(t *testing.T) {
	s := NewStore()
	s.SelectEntity("ent-9")
	s.SetIncludeAll(true)

	snap := s.Snapshot()
	if !snap.IncludeAll || snap.EntityID != "" {
		t.Errorf("snapshot = %+v, want includeAll with no entity", snap)
	}

	// 反向：选中单个实体应关闭 include-all
	s.SelectEntity("ent-1")
	snap = s.Snapshot()
	if snap.IncludeAll {
		t.Error("IncludeAll should be false after SelectEntity")
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := NewStore()
	s.SelectIncident("inc-1")
	snap := s.Snapshot()
	snap.RecentIncidents[0] = "mutated"

	if got := s.Snapshot().RecentIncidents[0]; got != "inc-1" {
		t.Errorf("store history mutated through snapshot: %s", got)
	}
}

func TestClear_KeepsHistory(t *testing.T) {
	s := NewStore()
	s.SelectIncident("inc-1")
	s.SetViewport(Viewport{CenterLat: 9.07, CenterLng: 7.49, Zoom: 6})
	s.Clear()

	snap := s.Snapshot()
	if snap.IncidentID != "" || snap.EntityID != "" || snap.IncludeAll {
		t.Errorf("Clear() left selection: %+v", snap)
	}
	if len(snap.RecentIncidents) != 1 {
		t.Errorf("Clear() should keep history, got %v", snap.RecentIncidents)
	}
	if snap.Viewport.Zoom != 6 {
		t.Errorf("Clear() should keep viewport, got %+v", snap.Viewport)
	}
}
