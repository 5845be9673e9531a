package player

import "sync"

type CommandKind int

const (
	CommandNext CommandKind = iota + 1
	CommandPrev
	CommandSkip
	CommandStop
)

func (k CommandKind) String() string {
	switch k {
	case CommandNext:
		return "next"
	case CommandPrev:
		return "prev"
	case CommandSkip:
		return "skip"
	case CommandStop:
		return "stop"
	}
	return "unknown"
}

// Command is a transient control value, consumed exactly once by the
// worker. Video is the 1-based target for CommandSkip.
type Command struct {
	Kind  CommandKind
	Video int
}

// commandQueue is an unbounded FIFO. Enqueue never blocks and is safe
// for concurrent callers; the worker is the only consumer. Commands are
// dequeued strictly in submission order, one per worker cycle.
type commandQueue struct {
	mu    sync.Mutex
	items []Command
}

func newCommandQueue() *commandQueue {
	return &commandQueue{}
}

func (q *commandQueue) push(cmd Command) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, cmd)
}

func (q *commandQueue) pop() (Command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Command{}, false
	}

	cmd := q.items[0]
	q.items = q.items[1:]
	return cmd, true
}

func (q *commandQueue) empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items) == 0
}
