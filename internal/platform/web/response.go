package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vovakirdan/t2048/internal/games/t2048"
)

// Error codes returned in APIError.Code.
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidConfig    = "INVALID_CONFIG"
	CodeInvalidDirection = "INVALID_DIRECTION"
	CodeGameNotFound     = "GAME_NOT_FOUND"
	CodeSessionOver      = "SESSION_OVER"
	CodeTooManyGames     = "TOO_MANY_GAMES"
	CodeInternalError    = "INTERNAL_ERROR"
)

var (
	errGameNotFound = errors.New("game not found")
	errInternal     = errors.New("internal error")
	errTooManyGames = errors.New("too many live games")
)

// APIError is the body of every error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// requestError marks a malformed request body or parameter.
type requestError struct {
	msg string
}

func (e *requestError) Error() string {
	return e.msg
}

func invalidRequest(msg string) error {
	return &requestError{msg: msg}
}

// JSON writes a JSON response.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent writes a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError maps err to a status code and writes it as JSON.
func WriteError(w http.ResponseWriter, err error) {
	status, apiErr := toAPIError(err)
	JSON(w, status, ErrorResponse{Error: apiErr})
}

func toAPIError(err error) (int, APIError) {
	var re *requestError
	switch {
	case errors.As(err, &re):
		return http.StatusBadRequest, APIError{CodeInvalidRequest, re.msg}
	case errors.Is(err, t2048.ErrInvalidConfig):
		return http.StatusBadRequest, APIError{CodeInvalidConfig, err.Error()}
	case errors.Is(err, t2048.ErrInvalidDirection):
		return http.StatusBadRequest, APIError{CodeInvalidDirection, err.Error()}
	case errors.Is(err, errGameNotFound):
		return http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}
	case errors.Is(err, t2048.ErrSessionOver):
		return http.StatusConflict, APIError{CodeSessionOver, "Game is over, reset to play again"}
	case errors.Is(err, errTooManyGames):
		return http.StatusServiceUnavailable, APIError{CodeTooManyGames, "Too many live games, try again later"}
	default:
		return http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}
	}
}
