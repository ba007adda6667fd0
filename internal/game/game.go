package game

// Status is the lifecycle state of a round.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusDraw    Status = "draw"
)

// Mode selects who plays O.
type Mode string

const (
	ModePlayerVsPlayer Mode = "pvp"
	ModePlayerVsAI     Mode = "pvai"
)

// In PlayerVsAI the human always plays X and the AI plays O.
const (
	HumanMark = PlayerX
	AIMark    = PlayerO
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModePlayerVsPlayer || m == ModePlayerVsAI
}

// Scoreboard accumulates results across rounds of a session.
type Scoreboard struct {
	XWins int `json:"xWins"`
	OWins int `json:"oWins"`
	Draws int `json:"draws"`
}

// Total is the number of rounds completed since the last reset.
func (s Scoreboard) Total() int {
	return s.XWins + s.OWins + s.Draws
}

func (s Scoreboard) record(o Outcome) Scoreboard {
	switch {
	case o.Status == StatusDraw:
		s.Draws++
	case o.Winner == PlayerX:
		s.XWins++
	case o.Winner == PlayerO:
		s.OWins++
	}
	return s
}

// RoundState is one playthrough from an empty board to a result.
type RoundState struct {
	Board       Board      `json:"board"`
	CurrentTurn PlayerMark `json:"currentTurn"`
	Status      Status     `json:"status"`
	Winner      PlayerMark `json:"winner,omitempty"`
	WinningLine []int      `json:"winningLine,omitempty"`
	Mode        Mode       `json:"mode"`
}

// NewRoundState returns an empty round with X to move.
func NewRoundState(mode Mode) RoundState {
	return RoundState{
		CurrentTurn: PlayerX,
		Status:      StatusPlaying,
		Mode:        mode,
	}
}

// State is everything the presentation layer renders.
type State struct {
	Round RoundState `json:"round"`
	Timer TimerState `json:"timer"`
	Score Scoreboard `json:"score"`
}

// NewState starts a session in the given mode with a zeroed scoreboard.
func NewState(mode Mode, turnSeconds int) State {
	round := NewRoundState(mode)
	return State{
		Round: round,
		Timer: NewTimer(round, turnSeconds),
	}
}

// ApplyMove places mark at index. Moves on an occupied or out-of-range cell,
// or on a finished round, return s unchanged.
func ApplyMove(s State, index int, mark PlayerMark) State {
	if s.Round.Status != StatusPlaying || !InBounds(index) || s.Round.Board[index] != None {
		return s
	}
	if mark != PlayerX && mark != PlayerO {
		return s
	}

	s.Round.Board[index] = mark

	outcome := Detect(s.Round.Board)
	switch outcome.Status {
	case StatusWon:
		s.Round.Status = StatusWon
		s.Round.Winner = outcome.Winner
		s.Round.WinningLine = outcome.Line
		s.Score = s.Score.record(outcome)
	case StatusDraw:
		s.Round.Status = StatusDraw
		s.Score = s.Score.record(outcome)
	default:
		s.Round.CurrentTurn = mark.Other()
	}
	return s
}

// StartRound replaces the round, keeping the mode and scoreboard.
func StartRound(s State, turnSeconds int) State {
	s.Round = NewRoundState(s.Round.Mode)
	s.Timer = NewTimer(s.Round, turnSeconds)
	return s
}

// ResetScores starts a new round and zeroes the scoreboard.
func ResetScores(s State, turnSeconds int) State {
	s = StartRound(s, turnSeconds)
	s.Score = Scoreboard{}
	return s
}

// ChangeMode switches mode and starts a fresh round. It is only allowed
// before the first move of the current round.
func ChangeMode(s State, mode Mode, turnSeconds int) (State, bool) {
	if !mode.Valid() || !s.Round.Board.IsEmpty() {
		return s, false
	}
	s.Round.Mode = mode
	return StartRound(s, turnSeconds), true
}
