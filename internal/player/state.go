package player

// cycleOutcome records why a worker cycle ended. It replaces the
// reference design's mutable skip flag with an explicit tagged value,
// consumed exactly once when the cycle finishes.
type cycleOutcome int

const (
	// the stream ended on its own, index auto-advances
	outcomeNatural cycleOutcome = iota
	// a dequeued command drove this cycle, no auto-advance
	outcomeCommand
	// resolution or startup failed, index was already bumped
	outcomeSkipped
)

// applyCommand mutates a pre-normalization index according to a
// control command. Skip converts the 1-based caller value to a 0-based
// index; values below 1 are rejected at the API boundary and never
// reach this point.
func applyCommand(index int, cmd Command) int {
	switch cmd.Kind {
	case CommandNext:
		return index + 1
	case CommandPrev:
		return index - 1
	case CommandSkip:
		return cmd.Video - 1
	}
	return index
}

// normalizeIndex wraps an out-of-range index back into the playlist:
// past the end returns to the first video, before the start returns to
// the last. An empty playlist leaves the index untouched, the worker
// must re-resolve before normalizing.
func normalizeIndex(index int, length int) int {
	if length == 0 {
		return index
	}

	if index >= length {
		return 0
	}

	if index < 0 {
		return length - 1
	}

	return index
}
