package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nazarious-ucu/weather-dashboard/internal/handlers/session"
	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

type identityExchanger interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (models.User, error)
}

// OIDCHandler covers the identity-provider login mode: a redirect to the
// provider and the authorization-code callback.
type OIDCHandler struct {
	Service identityExchanger
	logger  *log.Logger
}

func NewOIDCHandler(svc identityExchanger, logger *log.Logger) *OIDCHandler {
	return &OIDCHandler{Service: svc, logger: logger}
}

func (h *OIDCHandler) Login(c *gin.Context) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		h.logger.Printf("failed to generate state: %v", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	state := hex.EncodeToString(buf)

	if err := session.SetOIDCState(c, state); err != nil {
		h.logger.Printf("failed to save session: %v", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.Redirect(http.StatusFound, h.Service.AuthURL(state))
}

func (h *OIDCHandler) Callback(c *gin.Context) {
	if c.Query("state") == "" || c.Query("state") != session.TakeOIDCState(c) {
		session.AddFlash(c, "error", "Login attempt could not be verified. Please try again.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	user, err := h.Service.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.logger.Printf("token exchange failed: %v", err)
		session.AddFlash(c, "error", "Sign-in failed. Please try again.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := session.SetUser(c, user.ID); err != nil {
		h.logger.Printf("failed to save session: %v", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	session.AddFlash(c, "success", "Logged in successfully.")
	c.Redirect(http.StatusFound, "/weather")
}
