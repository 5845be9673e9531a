package player

import "testing"

func TestApplyCommand(t *testing.T) {
	tests := []struct {
		name  string
		index int
		cmd   Command
		want  int
	}{
		{
			name:  "next increments",
			index: 0,
			cmd:   Command{Kind: CommandNext},
			want:  1,
		},
		{
			name:  "prev decrements",
			index: 0,
			cmd:   Command{Kind: CommandPrev},
			want:  -1,
		},
		{
			name:  "skip converts 1-based to 0-based",
			index: 0,
			cmd:   Command{Kind: CommandSkip, Video: 3},
			want:  2,
		},
		{
			name:  "skip to first video",
			index: 5,
			cmd:   Command{Kind: CommandSkip, Video: 1},
			want:  0,
		},
		{
			name:  "next from not-yet-started",
			index: -1,
			cmd:   Command{Kind: CommandNext},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyCommand(tt.index, tt.cmd); got != tt.want {
				t.Errorf("applyCommand(%d, %v) = %d, want %d", tt.index, tt.cmd, got, tt.want)
			}
		})
	}
}

func TestNormalizeIndex(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		length int
		want   int
	}{
		{"in range stays", 1, 3, 1},
		{"first stays", 0, 3, 0},
		{"last stays", 2, 3, 2},
		{"past end wraps to start", 3, 3, 0},
		{"far past end wraps to start", 42, 3, 0},
		{"before start wraps to end", -1, 3, 2},
		{"far before start wraps to end", -42, 3, 2},
		{"empty playlist untouched", 7, 0, 7},
		{"empty playlist negative untouched", -1, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeIndex(tt.index, tt.length); got != tt.want {
				t.Errorf("normalizeIndex(%d, %d) = %d, want %d", tt.index, tt.length, got, tt.want)
			}
		})
	}
}

func TestNormalizeAlwaysInRange(t *testing.T) {
	// for any command sequence, the normalized index stays in range
	// whenever the playlist is non-empty
	length := 3
	index := 0

	commands := []Command{
		{Kind: CommandNext},
		{Kind: CommandNext},
		{Kind: CommandNext},
		{Kind: CommandPrev},
		{Kind: CommandPrev},
		{Kind: CommandPrev},
		{Kind: CommandSkip, Video: 3},
		{Kind: CommandSkip, Video: 1},
		{Kind: CommandNext},
	}

	for _, cmd := range commands {
		index = normalizeIndex(applyCommand(index, cmd), length)
		if index < 0 || index >= length {
			t.Fatalf("index %d out of range after %s", index, cmd.Kind)
		}
	}
}

func TestRepeatedSkipIdempotent(t *testing.T) {
	length := 3
	index := 0

	for i := 0; i < 5; i++ {
		index = normalizeIndex(applyCommand(index, Command{Kind: CommandSkip, Video: 3}), length)
		if index != 2 {
			t.Fatalf("skip(3) normalized to %d, want 2", index)
		}
	}
}

func TestCommandQueueFIFO(t *testing.T) {
	q := newCommandQueue()

	if _, ok := q.pop(); ok {
		t.Fatal("pop on empty queue returned a command")
	}
	if !q.empty() {
		t.Fatal("new queue not empty")
	}

	q.push(Command{Kind: CommandNext})
	q.push(Command{Kind: CommandPrev})
	q.push(Command{Kind: CommandSkip, Video: 2})

	want := []CommandKind{CommandNext, CommandPrev, CommandSkip}
	for i, kind := range want {
		cmd, ok := q.pop()
		if !ok {
			t.Fatalf("pop %d: queue empty", i)
		}
		if cmd.Kind != kind {
			t.Errorf("pop %d: got %s, want %s", i, cmd.Kind, kind)
		}
	}

	if !q.empty() {
		t.Fatal("queue not empty after draining")
	}
}
