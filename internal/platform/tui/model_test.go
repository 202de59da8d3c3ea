package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-defense/internal/battle/levels"
	"github.com/vovakirdan/lane-defense/internal/battle/sim"
	"github.com/vovakirdan/lane-defense/internal/config"
	"github.com/vovakirdan/lane-defense/internal/core"
)

func TestFrameDelta(t *testing.T) {
	now := time.Unix(100, 0)
	if got := frameDelta(time.Time{}, now, 1, 1); got != 0 {
		t.Fatalf("first frame should be 0, got %v", got)
	}
	if got := frameDelta(now, now.Add(40*time.Millisecond), 2, 0.5); got != 40 {
		t.Fatalf("expected 40, got %v", got)
	}
	if got := frameDelta(now, now.Add(5*time.Second), 1, 1); got != maxFrameMS {
		t.Fatalf("expected clamp to %d, got %v", maxFrameMS, got)
	}
	if got := frameDelta(now, now.Add(-time.Second), 1, 1); got != 0 {
		t.Fatalf("negative frame should be 0, got %v", got)
	}
}

func TestClock(t *testing.T) {
	if got := clock(0); got != "0:00" {
		t.Errorf("clock(0) = %q", got)
	}
	if got := clock(125_900); got != "2:05" {
		t.Errorf("clock(125900) = %q", got)
	}
}

func TestEventLogKeepsLastLines(t *testing.T) {
	l := newEventLog(3)
	for i := 0; i < 5; i++ {
		l.OnEvent(sim.Event{Type: sim.EventDeploy, Template: fmt.Sprintf("op%d", i)})
	}
	l.OnEvent(sim.Event{Type: sim.EventHit})

	lines := l.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(lines), lines)
	}
	if !strings.HasSuffix(lines[0], "op2 deployed") || !strings.HasSuffix(lines[2], "op4 deployed") {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func newTestBattle(t *testing.T) BattleModel {
	t.Helper()
	pack, err := levels.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(pack.Levels) == 0 {
		t.Fatal("embedded pack has no levels")
	}
	return NewBattleModel(Setup{
		Catalog: pack.Catalog,
		Config:  config.DefaultBattleConfig(),
		Level:   pack.Levels[0],
	}, core.RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 30, Seed: 7})
}

func TestBattleModelAdvancesOnTicks(t *testing.T) {
	m := newTestBattle(t)
	if m.err != nil {
		t.Fatalf("init: %v", m.err)
	}

	start := time.Unix(0, 0)
	for i := 0; i <= 10; i++ {
		next, cmd := m.Update(TickMsg(start.Add(time.Duration(i) * 50 * time.Millisecond)))
		if cmd == nil {
			t.Fatal("tick should schedule the next frame")
		}
		m = next.(BattleModel)
	}
	if got := m.sim.Time(); got != 500 {
		t.Fatalf("expected 500ms of game time, got %v", got)
	}
	if view := m.View(); view == "" {
		t.Fatal("empty view")
	}
}

func TestBattleModelPauseIsQueued(t *testing.T) {
	m := newTestBattle(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = next.(BattleModel)
	if m.sim.Paused() {
		t.Fatal("pause must wait for the next frame")
	}
	next, _ = m.Update(TickMsg(time.Unix(0, 0)))
	m = next.(BattleModel)
	if !m.sim.Paused() {
		t.Fatal("expected paused after frame")
	}
}

func TestBattleModelSelectWraps(t *testing.T) {
	m := newTestBattle(t)
	n := len(m.templates)
	if n == 0 {
		t.Skip("level has no roster")
	}
	m.selectOperator(-2)
	if m.selected != n-1 {
		t.Fatalf("expected last operator, got %d", m.selected)
	}
	m.selectOperator(n)
	if m.selected != -1 {
		t.Fatalf("expected no selection, got %d", m.selected)
	}
}

func TestBattleModelQuit(t *testing.T) {
	m := newTestBattle(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(BattleModel)
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
}
