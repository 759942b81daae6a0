package handlers

import "net/http"

// Routes assembles the HTTP surface. Scope checks beyond role gating
// happen inside the handlers, which read as not-found outside scope.
func Routes(m *Middleware, auth *AuthHandler, roster *RosterHandler, ingest *IngestHandler, game *GameHandler, stream *StreamHandler) *http.ServeMux {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /auth/login", auth.Login)
	mux.HandleFunc("GET /auth/me", m.RequireAuth(auth.Me))

	// Roster management
	mux.HandleFunc("POST /children", m.RequireSupervisor(roster.CreateChild))
	mux.HandleFunc("GET /children", m.RequireSupervisor(roster.ListChildren))
	mux.HandleFunc("GET /children/{id}", m.RequireSupervisor(roster.GetChild))
	mux.HandleFunc("PUT /children/{id}", m.RequireSupervisor(roster.UpdateChild))
	mux.HandleFunc("DELETE /children/{id}", m.RequireSupervisor(roster.DeleteChild))
	mux.HandleFunc("POST /children/{id}/status", m.RequireSupervisor(roster.SetChildStatus))

	// Operator administration
	mux.HandleFunc("POST /supervisors", m.RequireOperator(roster.CreateSupervisor))
	mux.HandleFunc("GET /supervisors", m.RequireOperator(roster.ListSupervisors))

	// Event ingestion and history
	mux.HandleFunc("POST /emotions", m.RequireAuth(ingest.RecordEmotion))
	mux.HandleFunc("POST /reports", m.RequireAuth(ingest.RecordReport))
	mux.HandleFunc("GET /children/{id}/emotions", m.RequireAuth(ingest.EmotionHistory))
	mux.HandleFunc("GET /children/{id}/reports", m.RequireAuth(ingest.GameHistory))

	// Server-driven game sessions
	mux.HandleFunc("POST /game/start", m.RequireChild(game.Start))
	mux.HandleFunc("GET /game/state", m.RequireChild(game.State))
	mux.HandleFunc("POST /game/emotion", m.RequireChild(game.Tick))
	mux.HandleFunc("POST /game/letter", m.RequireChild(game.PlaceLetter))
	mux.HandleFunc("POST /game/quit", m.RequireChild(game.Quit))

	// Live dashboard feed
	mux.HandleFunc("GET /subscribe", m.RequireAuth(stream.Subscribe))

	return mux
}
