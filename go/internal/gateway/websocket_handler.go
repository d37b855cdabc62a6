package gateway

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/orderalone/go/internal/auth"
	"github.com/mcdev12/orderalone/go/internal/httputil"
)

// WebSocketHandler upgrades authenticated subscribers onto the connection manager
type WebSocketHandler struct {
	connectionManager *ConnectionManager
	issuer            *auth.Issuer
}

func NewWebSocketHandler(cm *ConnectionManager, issuer *auth.Issuer) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
		issuer:            issuer,
	}
}

// HandleGameConnection streams every event of one game.
func (h *WebSocketHandler) HandleGameConnection(w http.ResponseWriter, r *http.Request) {
	gameID, err := httputil.ParseID(r.PathValue("game_id"), "game id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.subscribe(w, r, GameChannel(gameID))
}

// HandleRankingConnection streams game.ended events of all games.
func (h *WebSocketHandler) HandleRankingConnection(w http.ResponseWriter, r *http.Request) {
	h.subscribe(w, r, RankingChannel)
}

func (h *WebSocketHandler) subscribe(w http.ResponseWriter, r *http.Request, channel string) {
	userID, err := h.issuer.Authenticate(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	// Upgrade writes its own error response
	if err := h.connectionManager.UpgradeConnection(w, r, userID.String(), channel); err != nil {
		log.Error().
			Err(err).
			Str("channel", channel).
			Str("user_id", userID.String()).
			Msg("failed to upgrade WebSocket connection")
	}
}

func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.connectionManager.Stats())
}

func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/games/{game_id}", h.HandleGameConnection)
	mux.HandleFunc("GET /ws/ranking", h.HandleRankingConnection)
	mux.HandleFunc("GET /stats", h.HandleConnectionStats)
}
