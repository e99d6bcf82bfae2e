package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/services"
)

// AccountHandler serves signup and account lookups.
type AccountHandler struct {
	accountService *services.AccountService
	logger         *slog.Logger
}

func NewAccountHandler(accountService *services.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Signup handles POST /signup
func (h *AccountHandler) Signup(c *gin.Context) {
	var req services.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out, err := h.accountService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, out)
}

// GetAccount handles GET /accounts/:id
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, account)
}
