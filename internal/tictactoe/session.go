package tictactoe

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type State string

const (
	StateAwaitingHuman State = "awaiting_human"
	StateAwaitingAI    State = "awaiting_ai"
	StateGameOver      State = "game_over"
)

const (
	OutcomeHumanWon = "human_won"
	OutcomeAIWon    = "ai_won"
	OutcomeDraw     = "draw"
)

// Options - per-session settings. Zero values fall back to X.
type Options struct {
	DefaultHumanMark entity.Mark
	FirstMark        entity.Mark
}

// Snapshot - read-only copy of the observable session state.
type Snapshot struct {
	ID        string                   `json:"id,omitempty"`
	Board     [entity.BoardSize]string `json:"board"`
	HumanMark entity.Mark              `json:"human_mark"`
	AIMark    entity.Mark              `json:"ai_mark"`
	Turn      entity.Mark              `json:"turn"`
	State     State                    `json:"state"`
	Status    string                   `json:"status"`
	Winner    entity.Mark              `json:"winner,omitempty"`
	Line      []int                    `json:"line,omitempty"`
	Outcome   string                   `json:"outcome,omitempty"`
}

// TurnReport - result of a human move. AICell is NoMove when the AI did not play.
type TurnReport struct {
	Game    Snapshot `json:"game"`
	Applied bool     `json:"applied"`
	AICell  int      `json:"ai_cell"`
}

// Session - a single game between a human and the engine.
type Session struct {
	logger *slog.Logger
	opts   Options

	mu       sync.Mutex
	id       string
	board    entity.Board
	human    entity.Mark
	ai       entity.Mark
	state    State
	result   entity.GameResult
	searcher *Searcher
}

// NewSession - creates a session and starts the first game with the default human mark.
func NewSession(logger *slog.Logger, id string, opts Options) *Session {
	return StartSession(logger, id, opts, opts.DefaultHumanMark)
}

// StartSession - creates a session and starts the first game with humanMark. An invalid
// mark falls back to the default one, as in NewGame.
func StartSession(logger *slog.Logger, id string, opts Options, humanMark entity.Mark) *Session {
	if !opts.DefaultHumanMark.IsValid() {
		opts.DefaultHumanMark = entity.PlayerX
	}

	if !opts.FirstMark.IsValid() {
		opts.FirstMark = entity.PlayerX
	}

	session := &Session{
		logger: logger.With("component", "session", "gameID", id),
		opts:   opts,
		id:     id,
	}

	session.NewGame(humanMark)

	return session
}

func (that *Session) ID() string {
	return that.id
}

// NewGame - clears the board and assigns marks. When the AI holds the first mark it
// moves immediately.
func (that *Session) NewGame(humanMark entity.Mark) Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !humanMark.IsValid() {
		humanMark = that.opts.DefaultHumanMark
	}

	that.board.Clear()
	that.human = humanMark
	that.ai = humanMark.Opponent()
	that.result = entity.GameResult{}
	that.searcher = NewSearcher(that.ai)
	that.state = StateAwaitingHuman

	that.logger.Debug("new game", "human", that.human, "ai", that.ai)

	if that.ai == that.opts.FirstMark {
		that.state = StateAwaitingAI
		that.applyAIMove()
	}

	return that.snapshot()
}

// PlayHumanMove - places the human mark and lets the AI answer. Moves on a finished game,
// on an occupied cell or outside the board are ignored.
func (that *Session) PlayHumanMove(cell int) TurnReport {
	that.mu.Lock()
	defer that.mu.Unlock()

	report := TurnReport{AICell: NoMove}

	if that.validateMove(cell) != nil {
		report.Game = that.snapshot()
		return report
	}

	that.board[cell] = that.human
	report.Applied = true

	that.logger.Debug("human move", "cell", cell, "board", that.board.String())

	if that.settle() {
		report.Game = that.snapshot()
		return report
	}

	that.state = StateAwaitingAI
	report.AICell = that.applyAIMove()
	report.Game = that.snapshot()

	return report
}

// BoardState - returns a copy of the current state.
func (that *Session) BoardState() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

// applyAIMove - searches for the AI move, plays it and returns its cell.
func (that *Session) applyAIMove() int {
	move := that.searcher.BestMove(&that.board, that.ai)

	if move.Index != NoMove {
		that.board[move.Index] = that.ai
	}

	st := that.searcher.Stats()
	that.logger.Debug("ai move",
		"cell", move.Index,
		"score", move.Score,
		"visited", st.Visited,
		"terminal", st.Terminal,
		"cuts", st.Cuts,
		"board", that.board.String(),
	)

	if !that.settle() {
		that.state = StateAwaitingHuman
	}

	return move.Index
}

// settle - evaluates the board and finishes the game when it is terminal.
func (that *Session) settle() bool {
	that.result = entity.Evaluate(that.board)
	if !that.result.IsTerminal() {
		return false
	}

	that.state = StateGameOver
	that.logger.Info("game over", "status", that.result.Kind.String(), "winner", that.result.Mark)

	return true
}

func (that *Session) snapshot() Snapshot {
	snap := Snapshot{
		ID:        that.id,
		HumanMark: that.human,
		AIMark:    that.ai,
		State:     that.state,
		Status:    that.result.Kind.String(),
	}

	for i, cell := range that.board {
		snap.Board[i] = string(cell)
	}

	switch that.state {
	case StateAwaitingHuman:
		snap.Turn = that.human
	case StateAwaitingAI:
		snap.Turn = that.ai
	case StateGameOver:
		snap.Outcome = OutcomeDraw
	}

	if that.result.Kind == entity.Win {
		snap.Winner = that.result.Mark
		line := that.result.Line
		snap.Line = line[:]

		snap.Outcome = OutcomeAIWon
		if that.result.Mark == that.human {
			snap.Outcome = OutcomeHumanWon
		}
	}

	return snap
}
