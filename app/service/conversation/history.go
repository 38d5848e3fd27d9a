package conversation

// windowSize bounds the history forwarded to the AI collaborator: the
// last 8 turns, i.e. the last 4 user/assistant exchanges.
const windowSize = 8

// ContextWindow keeps the most recent delegated turns. Older turns are
// dropped, never summarized.
type ContextWindow struct {
	turns []Turn
}

func (w *ContextWindow) add(role Role, text string) {
	turn := Turn{Role: role, Text: text}

	if len(w.turns) >= windowSize {
		w.turns = append(w.turns[1:], turn)
	} else {
		w.turns = append(w.turns, turn)
	}
}

// Turns returns a copy of the window, oldest first.
func (w *ContextWindow) Turns() []Turn {
	return append([]Turn(nil), w.turns...)
}

func (w *ContextWindow) Len() int {
	return len(w.turns)
}
