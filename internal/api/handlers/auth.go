package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbalint/beamchat/internal/api/middleware"
	"github.com/tbalint/beamchat/internal/crypto"
	"github.com/tbalint/beamchat/internal/logger"
	"github.com/tbalint/beamchat/internal/store"
	"github.com/tbalint/beamchat/pkg/types"
)

type AuthHandler struct {
	users      *store.Users
	jwtManager *crypto.JWTManager
}

func NewAuthHandler(users *store.Users, jwtManager *crypto.JWTManager) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtManager: jwtManager,
	}
}

// PostRegister creates a new account and signs the user in.
// POST /auth/register
func (h *AuthHandler) PostRegister(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()

	// Check if username is already taken
	if _, err := h.users.GetUserByUsername(ctx, req.Username); err == nil {
		c.JSON(http.StatusConflict, types.ErrorResponse{Error: "username already taken"})
		return
	} else if err != sql.ErrNoRows {
		logger.Errorf("PostRegister: username lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "database error"})
		return
	}

	if _, err := h.users.GetUserByEmail(ctx, req.Email); err == nil {
		c.JSON(http.StatusConflict, types.ErrorResponse{Error: "email already registered"})
		return
	} else if err != sql.ErrNoRows {
		logger.Errorf("PostRegister: email lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "database error"})
		return
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		logger.Errorf("PostRegister: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to create user"})
		return
	}

	user, err := h.users.CreateUser(ctx, store.CreateUserParams{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: passwordHash,
	})
	if err != nil {
		logger.Errorf("PostRegister: CreateUser failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to create user"})
		return
	}

	resp, err := h.authResponse(user)
	if err != nil {
		logger.Errorf("PostRegister: token signing failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to issue tokens"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// PostLogin authenticates by email and password.
// POST /auth/login
func (h *AuthHandler) PostLogin(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.users.GetUserByEmail(c.Request.Context(), req.Email)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid credentials"})
		return
	}
	if err != nil {
		logger.Errorf("PostLogin: lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "database error"})
		return
	}

	if !crypto.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid credentials"})
		return
	}

	resp, err := h.authResponse(user)
	if err != nil {
		logger.Errorf("PostLogin: token signing failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to issue tokens"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PostRefresh exchanges a refresh token for a new access token.
// POST /auth/refresh
func (h *AuthHandler) PostRefresh(c *gin.Context) {
	var req types.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	claims, err := h.jwtManager.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid refresh token"})
		return
	}

	// The user must still exist; tokens outlive account deletion.
	user, err := h.users.GetUserByID(c.Request.Context(), claims.Subject)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "user not found"})
		return
	}
	if err != nil {
		logger.Errorf("PostRefresh: lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "database error"})
		return
	}

	accessToken, err := h.jwtManager.CreateAccessToken(user.ID, user.Username, user.Email)
	if err != nil {
		logger.Errorf("PostRefresh: token signing failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to issue tokens"})
		return
	}

	c.JSON(http.StatusOK, types.RefreshResponse{AccessToken: accessToken})
}

// GetMe returns the authenticated user's profile.
// GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	user, err := h.users.GetUserByID(c.Request.Context(), userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "user not found"})
		return
	}
	if err != nil {
		logger.Errorf("GetMe: lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "database error"})
		return
	}

	c.JSON(http.StatusOK, toAuthUser(user))
}

func (h *AuthHandler) authResponse(user store.User) (types.AuthResponse, error) {
	accessToken, err := h.jwtManager.CreateAccessToken(user.ID, user.Username, user.Email)
	if err != nil {
		return types.AuthResponse{}, err
	}
	refreshToken, err := h.jwtManager.CreateRefreshToken(user.ID, user.Username, user.Email)
	if err != nil {
		return types.AuthResponse{}, err
	}
	return types.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toAuthUser(user),
	}, nil
}

func toAuthUser(user store.User) types.AuthUser {
	return types.AuthUser{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
	}
}
