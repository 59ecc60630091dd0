package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/application/action"
	identityapp "github.com/orgdesk/backend/internal/application/identity"
)

// AuthAPI is the account surface used by AuthHandler
type AuthAPI interface {
	Register(ctx context.Context, in identityapp.RegisterInput) action.Result[*identityapp.AuthResult]
	Login(ctx context.Context, in identityapp.LoginInput) action.Result[*identityapp.AuthResult]
	Refresh(ctx context.Context, in identityapp.RefreshInput) action.Result[*identityapp.AuthResult]
	Me(ctx context.Context) action.Result[identityapp.UserResponse]
	Logout(ctx context.Context, in identityapp.LogoutInput) action.Result[struct{}]
	ChangePassword(ctx context.Context, in identityapp.ChangePasswordInput) action.Result[struct{}]
}

// AuthHandler handles registration, login and session endpoints
type AuthHandler struct {
	auth AuthAPI
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth AuthAPI) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates an account and signs it in
//
// @Summary      Register a user
// @Description  Create an account and return a token pair for it
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RegisterInput true "Registration details"
// @Success      201 {object} dto.Response{data=identity.AuthResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var in identityapp.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.auth.Register(c.Request.Context(), in), http.StatusCreated)
}

// Login exchanges credentials for a token pair
//
// @Summary      User login
// @Description  Authenticate with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginInput true "Login credentials"
// @Success      200 {object} dto.Response{data=identity.AuthResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var in identityapp.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.auth.Login(c.Request.Context(), in), http.StatusOK)
}

// Refresh rotates a refresh token
//
// @Summary      Refresh access token
// @Description  Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RefreshInput true "Refresh token"
// @Success      200 {object} dto.Response{data=identity.AuthResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var in identityapp.RefreshInput
	if !bindJSON(c, &in) {
		return
	}
	respond(c, h.auth.Refresh(c.Request.Context(), in), http.StatusOK)
}

// Me returns the signed-in user
//
// @Summary      Current user
// @Description  Return the signed-in user
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	respond(c, h.auth.Me(c.Request.Context()), http.StatusOK)
}

// Logout revokes the access token and, when given, the refresh token.
// An empty body is accepted.
//
// @Summary      User logout
// @Description  Revoke the access token and the optional refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LogoutInput false "Refresh token to revoke"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var in identityapp.LogoutInput
	if c.Request.ContentLength != 0 && !bindJSON(c, &in) {
		return
	}
	respondEmpty(c, h.auth.Logout(c.Request.Context(), in))
}

// ChangePassword replaces the signed-in user's password
//
// @Summary      Change password
// @Description  Replace the signed-in user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.ChangePasswordInput true "Current and new password"
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var in identityapp.ChangePasswordInput
	if !bindJSON(c, &in) {
		return
	}
	respondEmpty(c, h.auth.ChangePassword(c.Request.Context(), in))
}
