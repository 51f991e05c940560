package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	userIDKey   = "user_id"
	usernameKey = "username"
)

// Manager wraps a cookie session store with the small surface the handlers
// and middleware need: establish, inspect and clear the signed-in user.
type Manager struct {
	store *sessions.CookieStore
	name  string
}

func NewManager(secret, name string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	}
	return &Manager{store: store, name: name}
}

// SignIn records the user in the request's session cookie.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, userID int64, username string) error {
	session, _ := m.store.Get(r, m.name)
	session.Values[userIDKey] = userID
	session.Values[usernameKey] = username
	return session.Save(r, w)
}

// SignOut clears the session cookie.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, m.name)
	session.Options.MaxAge = -1
	for k := range session.Values {
		delete(session.Values, k)
	}
	return session.Save(r, w)
}

// Current returns the signed-in user's id and username, or ok=false when
// the request carries no valid session.
func (m *Manager) Current(r *http.Request) (userID int64, username string, ok bool) {
	session, err := m.store.Get(r, m.name)
	if err != nil {
		return 0, "", false
	}
	id, idOK := session.Values[userIDKey].(int64)
	name, nameOK := session.Values[usernameKey].(string)
	if !idOK || !nameOK {
		return 0, "", false
	}
	return id, name, true
}
