package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// maxMessageSize - longest accepted line, newline included.
const maxMessageSize = 64 * 1024

const messageTooLong = "message too long"

var ErrUnknownAction = errors.New("unknown action")

type gameManager interface {
	NewGame(ctx context.Context, gameID string, humanMark entity.Mark) (tictactoe.Snapshot, error)
	PlayHumanMove(ctx context.Context, gameID string, cell int) (tictactoe.TurnReport, error)
	ValidateMove(ctx context.Context, gameID string, cell int) error
	GetBoardState(ctx context.Context, gameID string) (tictactoe.Snapshot, error)
	EndGame(ctx context.Context, gameID string) (tictactoe.Snapshot, error)
}

// Server - drives games from newline-delimited JSON messages.
type Server struct {
	logger      *slog.Logger
	gameManager gameManager
	strict      bool

	writeMutex sync.Mutex
	encoder    *json.Encoder

	handlers map[string]func(ctx context.Context, message *Message) error
}

// New - creates a server writing responses to out. In strict mode rejected moves are
// reported as errors instead of being ignored.
func New(logger *slog.Logger, gameManager gameManager, out io.Writer, strict bool) *Server {
	server := &Server{
		logger:      logger.With("component", "stdio"),
		gameManager: gameManager,
		strict:      strict,

		encoder:  json.NewEncoder(out),
		handlers: make(map[string]func(context.Context, *Message) error),
	}

	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionGameLeave] = server.handleGameLeave

	return server
}

// Serve - processes messages from in until it is exhausted or ctx is canceled.
// Lines longer than maxMessageSize are skipped with an error response.
func (that *Server) Serve(ctx context.Context, in io.Reader) error {
	log := that.logger.With("method", "Serve")

	reader := bufio.NewReaderSize(in, maxMessageSize)
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("serve stopped: %w", err)
		}

		line, err := reader.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			err = skipLine(reader)
			log.Warn("message too long")

			if sendErr := that.sendErrorResponse(actionError, messageTooLong); sendErr != nil {
				log.Error("error processing message", "error", sendErr)
			}
		} else if line = bytes.TrimRight(line, "\r\n"); len(line) > 0 {
			if handleErr := that.handleMessage(ctx, line); handleErr != nil {
				log.Error("error processing message", "error", handleErr)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}
	}

	log.Info("input closed")

	return nil
}

// skipLine - discards the rest of the current line, newline included.
func skipLine(reader *bufio.Reader) error {
	for {
		_, err := reader.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err //nolint: wrapcheck // wrapped by Serve
		}
	}
}

func (that *Server) handleMessage(ctx context.Context, line []byte) error {
	var message Message
	if err := json.Unmarshal(line, &message); err != nil {
		return that.sendErrorResponse(actionError, fmt.Sprintf("malformed message: %v", err))
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		return that.sendErrorResponse(message.Action, fmt.Sprintf("%v: %q", ErrUnknownAction, message.Action))
	}

	return handler(ctx, &message)
}
