package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	serviceAuth "github.com/Nazarious-ucu/weather-dashboard/internal/services/auth"

	"github.com/Nazarious-ucu/weather-dashboard/internal/handlers/session"
	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

type authenticator interface {
	Register(username, email, password string) (models.User, error)
	Login(email, password string) (models.User, error)
}

type Handler struct {
	Service authenticator
	logger  *log.Logger
}

func NewHandler(svc authenticator, logger *log.Logger) *Handler {
	return &Handler{Service: svc, logger: logger}
}

type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type registerForm struct {
	Username string `form:"username" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
}

func (h *Handler) ShowLogin(c *gin.Context) {
	if _, ok := session.CurrentUserID(c); ok {
		c.Redirect(http.StatusFound, "/weather")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flashes": session.Flashes(c),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		session.AddFlash(c, "error", "Email and password are required.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	user, err := h.Service.Login(form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, serviceAuth.ErrInvalidCredentials) {
			h.logger.Printf("login failed: %v", err)
		}
		session.AddFlash(c, "error", "Invalid email or password.")
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

func (h *Handler) ShowRegister(c *gin.Context) {
	if _, ok := session.CurrentUserID(c); ok {
		c.Redirect(http.StatusFound, "/weather")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Flashes": session.Flashes(c),
	})
}

func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		session.AddFlash(c, "error", "All fields are required; passwords need at least 8 characters.")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	user, err := h.Service.Register(form.Username, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, serviceAuth.ErrEmailTaken) {
			session.AddFlash(c, "warning", "Email already registered. Please log in instead.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		h.logger.Printf("registration failed: %v", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	if err := session.SetUser(c, user.ID); err != nil {
		h.logger.Printf("failed to save session: %v", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	session.AddFlash(c, "success", "Registration successful!")
	c.Redirect(http.StatusFound, "/weather")
}

func (h *Handler) Logout(c *gin.Context) {
	if err := session.Clear(c); err != nil {
		h.logger.Printf("failed to clear session: %v", err)
	}
	session.AddFlash(c, "info", "You have been logged out.")
	c.Redirect(http.StatusFound, "/")
}
