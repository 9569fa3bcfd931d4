package auth

import "sync"

// Locations the guard knows about.
const (
	RouteLogin          = "/login"
	RouteChangePassword = "/change-password"
	RouteHome           = "/"
)

// Navigator exposes the current location and moves to another one.
type Navigator interface {
	Current() string
	Navigate(path string)
}

// MemoryNavigator is a Navigator holding the location in memory. Navigate
// replaces the location, it keeps no history.
type MemoryNavigator struct {
	mu      sync.RWMutex
	current string
}

func NewMemoryNavigator(initial string) *MemoryNavigator {
	if initial == "" {
		initial = RouteHome
	}
	return &MemoryNavigator{current: initial}
}

func (n *MemoryNavigator) Current() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

func (n *MemoryNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = path
}
