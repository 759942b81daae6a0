package handlers

import (
	"net/http"

	"emotispell/internal/models"
	"emotispell/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string      `json:"token"`
	Account accountView `json:"account"`
}

type accountView struct {
	ID       string      `json:"id"`
	Role     models.Role `json:"role"`
	Name     string      `json:"name"`
	Contact  string      `json:"contact,omitempty"`
	Username string      `json:"username"`
	Active   bool        `json:"active"`
}

func viewFor(account *models.Account) accountView {
	return accountView{
		ID:       account.ID,
		Role:     account.Role,
		Name:     account.Name,
		Contact:  account.Contact,
		Username: account.Username,
		Active:   account.Active,
	}
}

// Login exchanges a username and password for a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	signed, account, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Token:   signed,
		Account: viewFor(account),
	})
}

// Me returns the account behind the presented token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account := AccountFromContext(r.Context())
	if account == nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}
	respondJSON(w, http.StatusOK, viewFor(account))
}
