package stdio

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	actionGameNew   = "game:new"
	actionGameTurn  = "game:turn"
	actionGameState = "game:state"
	actionGameLeave = "game:leave"
	actionError     = "error"
)

// Message - one line of the protocol: an action and its payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID    string `json:"game_id,omitempty"`
	HumanMark string `json:"human_mark,omitempty"`
	Cell      *int   `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Game   *tictactoe.Snapshot `json:"game,omitempty"`
	AICell *int                `json:"ai_cell,omitempty"`
	Error  string              `json:"error,omitempty"`
}

func (that *Server) sendMessage(action string, payload ResponsePayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadBytes,
	}

	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err = that.encoder.Encode(response); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(action, errorMsg string) error {
	payload := ResponsePayload{Error: errorMsg}
	if err := that.sendMessage(action, payload); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
