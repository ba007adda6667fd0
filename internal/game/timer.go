package game

// DefaultTurnSeconds is the countdown every timed turn starts from.
const DefaultTurnSeconds = 10

// TimerState is the per-turn countdown.
type TimerState struct {
	SecondsRemaining int  `json:"secondsRemaining"`
	Active           bool `json:"active"`
}

// TimerApplies reports whether mark's turn is timed in mode. PvP times both
// players; PvAI times only the human.
func TimerApplies(mode Mode, mark PlayerMark) bool {
	if mode == ModePlayerVsAI {
		return mark == HumanMark
	}
	return true
}

// NewTimer returns a fresh countdown for the round's current turn.
func NewTimer(round RoundState, seconds int) TimerState {
	return TimerState{
		SecondsRemaining: seconds,
		Active:           round.Status == StatusPlaying && TimerApplies(round.Mode, round.CurrentTurn),
	}
}

// Tick decrements an active countdown by one unit and reports expiry.
func Tick(s State) (State, bool) {
	if !s.Timer.Active || s.Round.Status != StatusPlaying {
		return s, false
	}
	s.Timer.SecondsRemaining--
	if s.Timer.SecondsRemaining > 0 {
		return s, false
	}
	s.Timer.SecondsRemaining = 0
	return s, true
}

// TimeoutMover returns the mark a forced move is made for when the current
// turn expires. In PvAI the engine moves for the human; in PvP the turn is
// forfeited and the opponent gets the move.
func TimeoutMover(round RoundState) PlayerMark {
	if round.Mode == ModePlayerVsAI {
		return round.CurrentTurn
	}
	return round.CurrentTurn.Other()
}
