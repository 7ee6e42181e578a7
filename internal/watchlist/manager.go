package watchlist

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Manager handles the persisted symbol watchlist with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewManager creates a Manager, loading state from disk. seed symbols are
// added only when the file did not exist yet.
func NewManager(filePath string, seed []string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	m := &Manager{state: state, filePath: filePath}
	if len(state.Symbols) == 0 && len(seed) > 0 {
		for _, s := range seed {
			m.addLocked(s)
		}
		if err := SaveState(filePath, state); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Symbols returns a sorted copy of the current watchlist.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.state.Symbols))
	copy(out, m.state.Symbols)
	sort.Strings(out)
	return out
}

// Contains reports whether the symbol is on the watchlist.
func (m *Manager) Contains(symbol string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	symbol = normalize(symbol)
	for _, s := range m.state.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// Add puts a symbol on the watchlist and persists it.
func (m *Manager) Add(symbol string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	symbol = normalize(symbol)
	if symbol == "" {
		return fmt.Errorf("empty symbol")
	}
	if !m.addLocked(symbol) {
		return fmt.Errorf("%s already on watchlist", symbol)
	}
	return SaveState(m.filePath, m.state)
}

// Remove drops a symbol from the watchlist and persists the change.
func (m *Manager) Remove(symbol string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	symbol = normalize(symbol)
	for i, s := range m.state.Symbols {
		if s == symbol {
			m.state.Symbols = append(m.state.Symbols[:i], m.state.Symbols[i+1:]...)
			return SaveState(m.filePath, m.state)
		}
	}
	return fmt.Errorf("%s not on watchlist", symbol)
}

func (m *Manager) addLocked(symbol string) bool {
	symbol = normalize(symbol)
	for _, s := range m.state.Symbols {
		if s == symbol {
			return false
		}
	}
	m.state.Symbols = append(m.state.Symbols, symbol)
	return true
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
