package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/session"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Recorder persists finished sessions. A nil Recorder or one without a store
// drops results; play never depends on persistence.
type Recorder struct {
	store  *storage.Store
	player string
	logger *log.Logger
}

// NewRecorder creates a recorder for one player.
func NewRecorder(store *storage.Store, player string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{store: store, player: player, logger: logger}
}

// Record saves the score (when positive) and the session result.
// Returns the run ID, or "" when nothing was stored.
func (r *Recorder) Record(gameID string, score int, res session.Result) string {
	if r == nil || r.store == nil {
		return ""
	}

	if score > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		r.store.SaveScore(gameID, score)
	}

	runID, err := r.store.SaveSessionResult(storage.SessionResult{
		GameID:        gameID,
		Player:        r.player,
		Outcome:       res.Outcome.String(),
		BricksCleared: res.BricksCleared,
		BricksTotal:   res.BricksTotal,
		Ticks:         res.Ticks,
	})
	if err != nil {
		r.logger.Warn("could not record session", "err", err)
		return ""
	}

	r.logger.Debug("session recorded",
		"run", runID,
		"player", r.player,
		"outcome", res.Outcome,
		"score", score,
	)
	return runID
}
