package handlers

import (
	"net/http"

	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Email    string `json:"email" binding:"required" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

type loginRequest struct {
	// Username or email.
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int    `json:"expires_in" example:"1800"`
}

// register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      registerRequest  true  "account"
// @Success      201    {object}  models.User
// @Failure      400    {object}  errorResponse
// @Failure      429    {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		h.log.Infow("auth_register_failed", "username", input.Username, "err", err)
		h.writeServiceError(c, err)
		return
	}

	h.log.Infow("auth_registered", "user_id", user.ID, "username", user.Username)
	c.JSON(http.StatusCreated, user)
}

// login godoc
// @Summary      Log in with username or email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      loginRequest  true  "credentials"
// @Success      200    {object}  tokenResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      429    {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.log.Infow("auth_login_failed", "username", input.Username, "err", err)
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.opts.TokenTTL.Seconds()),
	})
}

// me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// deleteMe godoc
// @Summary      Delete the current account and all its tasks
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [delete]
func (h *Handler) deleteMe(c *gin.Context) {
	user := currentUser(c)
	if err := h.services.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.log.Infow("auth_account_deleted", "user_id", user.ID)
	c.Status(http.StatusNoContent)
}
