package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chxlky/trello-gchat-notify/internal/auth"
	"github.com/chxlky/trello-gchat-notify/internal/models"
)

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, bindMessage(err))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleMember,
	}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			abort(c, http.StatusBadRequest, "User already exists")
			return
		}
		respondError(c, err)
		return
	}

	zap.L().Info("User registered", zap.String("userID", user.ID), zap.String("email", user.Email))
	h.respondWithToken(c, http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, bindMessage(err))
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			abort(c, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
			return
		}
		respondError(c, err)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		abort(c, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, newUserResponse(currentUser(c)))
}

func (h *Handler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := h.Tokens.Issue(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, gin.H{"token": token, "user": newUserResponse(user)})
}
