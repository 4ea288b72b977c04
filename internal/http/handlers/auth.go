package handlers

import (
	"context"
	"net/http"

	"github.com/hongminglow/catalog-be/internal/auth"
	"github.com/hongminglow/catalog-be/internal/http/respond"
	"github.com/hongminglow/catalog-be/internal/models/dto"
	"github.com/hongminglow/catalog-be/internal/validation"
)

// Authenticator is the account side of the auth service.
type Authenticator interface {
	SignUp(ctx context.Context, reg auth.Registration) (auth.TokenPair, error)
	SignIn(ctx context.Context, login auth.Login) (auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error)
}

// AuthHandler owns the sign-up, sign-in and refresh endpoints.
type AuthHandler struct {
	auth     Authenticator
	validate *validation.Validator
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authenticator Authenticator, validate *validation.Validator) *AuthHandler {
	return &AuthHandler{auth: authenticator, validate: validate}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/signup", h.handleSignUp)
	mux.HandleFunc("POST /auth/signin", h.handleSignIn)
	mux.HandleFunc("POST /auth/refresh", h.handleRefresh)
}

func (h *AuthHandler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Fail(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Fail(w, r, err)
		return
	}
	phone, err := h.validate.NormalizePhone(req.PhoneNumber)
	if err != nil {
		respond.Fail(w, r, validation.Field("phone_number", "must be a valid phone number"))
		return
	}

	pair, err := h.auth.SignUp(r.Context(), auth.Registration{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Username:       req.Username,
		PassportSeries: req.PassportSeries,
		PassportNumber: req.PassportNumber,
		Email:          req.Email,
		Phone:          phone,
		Password:       req.Password,
		Confirmation:   req.ConfirmedPassword,
	})
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, tokenResponse(pair))
}

func (h *AuthHandler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Fail(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Fail(w, r, err)
		return
	}
	pair, err := h.auth.SignIn(r.Context(), auth.Login{Email: req.Email, Password: req.Password})
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tokenResponse(pair))
}

func (h *AuthHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Fail(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.Fail(w, r, err)
		return
	}
	pair, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tokenResponse(pair))
}

func tokenResponse(pair auth.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(pair.ExpiresIn.Seconds()),
	}
}
