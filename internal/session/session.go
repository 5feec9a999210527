// Package session holds the per-process login and presentation state. It is
// never persisted.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/daybook/daybook/internal/journal"
)

// Theme is the presentation theme collaborators render with.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Session tracks whether the local user unlocked the journal during this
// process. It is safe for concurrent use.
type Session struct {
	id string

	mu            sync.RWMutex
	authenticated bool
	user          *journal.User
	theme         Theme
	hooks         []func(Theme)
}

// New creates a logged-out session with the light theme.
func New() *Session {
	return &Session{
		id:    uuid.NewString(),
		theme: ThemeLight,
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// User returns a copy of the cached user, or nil when logged out.
func (s *Session) User() *journal.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Login marks the session authenticated and caches user.
func (s *Session) Login(user journal.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = true
	s.user = &user
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
	s.user = nil
}

func (s *Session) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// IsDarkMode reports whether the dark theme is active.
func (s *Session) IsDarkMode() bool {
	return s.Theme() == ThemeDark
}

// ThemeClass returns the CSS class name for the active theme.
func (s *Session) ThemeClass() string {
	if s.IsDarkMode() {
		return "dark-theme"
	}
	return "light-theme"
}

// SetTheme switches the theme and notifies hooks when it changed. Unknown
// values select the light theme.
func (s *Session) SetTheme(theme Theme) {
	if theme != ThemeDark {
		theme = ThemeLight
	}

	s.mu.Lock()
	if s.theme == theme {
		s.mu.Unlock()
		return
	}
	s.theme = theme
	hooks := append([]func(Theme){}, s.hooks...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(theme)
	}
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Session) ToggleTheme() Theme {
	next := ThemeDark
	if s.IsDarkMode() {
		next = ThemeLight
	}
	s.SetTheme(next)
	return next
}

// OnChange registers fn to run after every theme change. Hooks run outside
// the lock, in registration order.
func (s *Session) OnChange(fn func(Theme)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}
