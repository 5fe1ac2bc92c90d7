package server

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/datasweep/datasweep-cli/internal/dataset"
	"github.com/datasweep/datasweep-cli/internal/profile"
)

const sessionCookie = "datasweep_session"

// session is the explicit state record for one interaction: the loaded
// table, its profile, the last suggestion, and the last cleaning result.
// Derived values are recomputed on each change, never mutated in place.
type session struct {
	mu sync.Mutex

	table      *dataset.Table
	prof       *profile.Report
	suggestion string

	cleaned *dataset.Table
	actions []string

	// Guards the single in-flight suggestion request.
	suggestBusy bool
}

// sessionFor returns the caller's session, creating one (and setting the
// cookie) on first contact.
func (s *Server) sessionFor(c echo.Context) *session {
	var id string
	if ck, err := c.Cookie(sessionCookie); err == nil && ck.Value != "" {
		id = ck.Value
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return sess
		}
	}
	id = uuid.NewString()
	sess := &session{}
	s.sessions[id] = sess
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return sess
}
