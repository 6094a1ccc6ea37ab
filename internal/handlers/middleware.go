package handlers

import (
	"errors"
	"net/http"
	"strings"

	"campervan_catalog/internal/session"

	"github.com/gin-gonic/gin"
)

const ctxSessionKey = "session"

const (
	errMissingAuth   = "missing Authorization header"
	errAuthFormat    = "invalid Authorization header format"
	errInvalidToken  = "invalid or expired token"
	errSessionGone   = "session expired"
	errResolveTarget = "failed to resolve session"
)

func (h *Handler) sessionMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMissingAuth})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errAuthFormat})
		return
	}

	sess, code, msg := h.resolveSession(parts[1])
	if sess == nil {
		c.AbortWithStatusJSON(code, gin.H{"error": msg})
		return
	}

	c.Set(ctxSessionKey, sess)
	c.Next()
}

// resolveSession maps a token to its live session. On failure it returns
// the status and message to answer with.
func (h *Handler) resolveSession(token string) (*session.Session, int, string) {
	id, err := h.services.Parse(token)
	if err != nil {
		return nil, http.StatusUnauthorized, errInvalidToken
	}
	sess, err := h.services.Get(id)
	switch {
	case errors.Is(err, session.ErrNotFound):
		return nil, http.StatusGone, errSessionGone
	case err != nil:
		if h.log != nil {
			h.log.Errorw("session_lookup_failed", "session", id, "err", err)
		}
		return nil, http.StatusInternalServerError, errResolveTarget
	}
	return sess, http.StatusOK, ""
}

// currentSession is only valid behind sessionMiddleware.
func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(ctxSessionKey).(*session.Session)
}
