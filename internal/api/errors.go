package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xtding233/loot-economy/internal/economy"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

// errTypeBadRequest marks malformed requests that never reached the engine.
const errTypeBadRequest = "invalid_params"

func statusFor(k economy.Kind) int {
	switch k {
	case economy.KindInsufficientBalance,
		economy.KindInsufficientSourceItems,
		economy.KindNoRewardsConfigured,
		economy.KindNoPoolForTargetTier,
		economy.KindRevealInProgress:
		return http.StatusConflict
	case economy.KindInvalidTier,
		economy.KindInvalidCost,
		economy.KindInvalidAmount,
		economy.KindInvalidCatalog:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeEngineError maps an engine failure to its status and body. Internal
// failures are logged and their message withheld.
func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error, ctx map[string]any) {
	kind := economy.KindOf(err)
	status := statusFor(kind)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Type: string(kind), Message: msg, Context: ctx})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Type: errTypeBadRequest, Message: msg})
}
