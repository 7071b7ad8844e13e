package session

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey    = "user_id"
	oidcStateKey = "oidc_state"

	// ContextUserID is where RequireAuth leaves the authenticated user's id
	// for downstream handlers.
	ContextUserID = "current_user_id"
)

// Flash is a one-shot message for the next rendered page.
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

func SetUser(c *gin.Context, userID int64) error {
	s := sessions.Default(c)
	s.Set(userIDKey, userID)
	return s.Save()
}

func Clear(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	return s.Save()
}

func CurrentUserID(c *gin.Context) (int64, bool) {
	v := sessions.Default(c).Get(userIDKey)
	id, ok := v.(int64)
	return id, ok
}

func AddFlash(c *gin.Context, category, message string) {
	s := sessions.Default(c)
	s.AddFlash(Flash{Category: category, Message: message})
	_ = s.Save()
}

// Flashes drains pending flash messages.
func Flashes(c *gin.Context) []Flash {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save()

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}

func SetOIDCState(c *gin.Context, state string) error {
	s := sessions.Default(c)
	s.Set(oidcStateKey, state)
	return s.Save()
}

// TakeOIDCState returns and deletes the stored login state nonce.
func TakeOIDCState(c *gin.Context) string {
	s := sessions.Default(c)
	v := s.Get(oidcStateKey)
	s.Delete(oidcStateKey)
	_ = s.Save()
	state, _ := v.(string)
	return state
}

// RequireAuth gates a route group on a logged-in session and exposes the
// user id under ContextUserID.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			AddFlash(c, "warning", "Please log in to continue.")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Set(ContextUserID, id)
		c.Next()
	}
}

// UserID reads the id RequireAuth stored on the request context.
func UserID(c *gin.Context) int64 {
	id, _ := c.Get(ContextUserID)
	v, _ := id.(int64)
	return v
}
