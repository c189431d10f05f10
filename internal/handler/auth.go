package handler

import (
	"errors"
	"net/http"

	"github.com/folio/folio-api/internal/cookie"
	"github.com/folio/folio-api/internal/middleware"
	"github.com/folio/folio-api/internal/model"
	"github.com/folio/folio-api/internal/response"
	"github.com/folio/folio-api/internal/service"
)

// AuthHandler handles login, logout, token refresh and password changes.
type AuthHandler struct {
	responder
	service *service.AuthService
	cookies cookie.Writer
}

func NewAuthHandler(svc *service.AuthService, cookies cookie.Writer, debug bool) *AuthHandler {
	return &AuthHandler{responder: responder{debug: debug}, service: svc, cookies: cookies}
}

type loginResponse struct {
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
	User         model.UserResponse `json:"user"`
}

// HandleLogin handles POST /api/v1/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	var req model.LoginRequest
	if err := p.decode(&req); err != nil {
		h.fail(w, err)
		return
	}

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		// Unknown email and wrong password look the same to the client.
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.fail(w, err)
		return
	}

	h.cookies.Set(w, res.Tokens)
	response.JSON(w, http.StatusOK, "User logged in successfully", loginResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		User:         res.User,
	})
}

// HandleLogout handles POST /api/v1/auth/logout requests.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var refresh string
	if c, err := r.Cookie(cookie.RefreshName); err == nil {
		refresh = c.Value
	}

	if err := h.service.Logout(r.Context(), middleware.TokenFromRequest(r), refresh); err != nil {
		h.fail(w, err)
		return
	}

	h.cookies.Clear(w)
	response.JSON(w, http.StatusOK, "User logged out successfully", nil)
}

// HandleRefresh handles POST /api/v1/auth/refresh-token requests.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(cookie.RefreshName); err == nil {
		token = c.Value
	}

	pair, err := h.service.Refresh(r.Context(), token)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.cookies.Set(w, pair)
	response.JSON(w, http.StatusOK, "Access token refreshed successfully", pair)
}

// HandleChangePassword handles POST /api/v1/auth/change-password requests.
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity(w, r)
	if !ok {
		return
	}

	p, err := readPayload(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	var req model.ChangePasswordRequest
	if err := p.decode(&req); err != nil {
		h.fail(w, err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, req); err != nil {
		h.fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, "Password changed successfully", nil)
}
