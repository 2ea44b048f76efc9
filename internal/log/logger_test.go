package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewGameEvent())
	l.Log(NewDrawEvent(1, 0, []string{"Leap", "Halve", "Mirror"}))
	l.Log(NewApplyEvent(1, "Playing", "Leap", 0, 0, 5))

	events := l.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events", len(events))
	}
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("event %d has seq %d", i, e.Seq)
		}
	}
	if got := l.EventsOfType(EventApply); len(got) != 1 || got[0].Total != 5 {
		t.Errorf("apply events = %+v", got)
	}
	if l.LastEvent().Type != EventApply {
		t.Errorf("last event = %s", l.LastEvent().Type)
	}
}

func TestMemoryLoggerDrain(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewGameEvent())
	l.Log(NewResetEvent())

	first := l.Drain()
	if len(first) != 2 {
		t.Fatalf("first drain = %d events", len(first))
	}
	if len(l.Events()) != 0 {
		t.Error("drain should forget events")
	}

	l.Log(NewGameEvent())
	second := l.Drain()
	if len(second) != 1 || second[0].Seq != 3 {
		t.Errorf("second drain = %+v, want seq 3", second)
	}
	if l.LastEvent().Seq != 0 {
		t.Errorf("LastEvent after drain = %+v, want zero event", l.LastEvent())
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewApplyEvent(2, "Playing", "Leap", 1, 16, 21))
	l.Log(NewWinEvent(2, 21))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if lines[0] != "T2  Playing | Card 2: Leap (total 16 → 21)" {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "T2  Won     | You win!") {
		t.Errorf("line 2 = %q", lines[1])
	}
	if len(l.Events()) != 2 {
		t.Error("text logger should also keep events")
	}
}

func TestEventConstructors(t *testing.T) {
	reveal := NewRevealEvent(3, "Playing", "Tumble", 2, "-", 4, 7)
	if reveal.Type != EventReveal || reveal.Value != 4 || reveal.Details != "Tumble reveals -4" {
		t.Errorf("reveal = %+v", reveal)
	}
	bonus := NewBonusEvent(1, "Playing", "Momentum", 0, 1, 0)
	if bonus.Value != 1 || bonus.Index != 0 {
		t.Errorf("bonus = %+v", bonus)
	}
	for _, e := range []GameEvent{
		NewGameEvent(), NewDrawEvent(1, 0, nil), NewPoolFallbackEvent(1, 0, 4, errors.New("pool empty")),
		NewWinEvent(1, 21), NewLoseEvent(1, 25), NewResetEvent(), NewRejectedEvent(0, "Playing", 0, "no game"),
	} {
		if e.Index != -1 {
			t.Errorf("%s: index = %d, want -1", e.Type, e.Index)
		}
	}
	if got := NewRejectedEvent(0, "Playing", 0, "no game").Details; got != "Rejected: no game" {
		t.Errorf("rejected details = %q", got)
	}
}

func TestFormatAll(t *testing.T) {
	out := FormatAll([]GameEvent{NewGameEvent(), NewResetEvent()})
	if strings.Count(out, "\n") != 2 {
		t.Errorf("FormatAll = %q", out)
	}
	if !strings.Contains(out, "Session reset") {
		t.Errorf("missing reset line: %q", out)
	}
}

func TestEventTypeString(t *testing.T) {
	if EventPoolFallback.String() != "PoolFallback" || EventType(99).String() != "Unknown" {
		t.Error("unexpected event type names")
	}
}
