package turingmachines

import (
	"github.com/charmbracelet/log"

	"github.com/comalice/turingmachines/internal/logger"
)

// DefaultMaximumNonDeterministicSearch is the default cap on configurations
// examined by one build.
const DefaultMaximumNonDeterministicSearch = 100000

// Option applies configuration to a TuringMachine.
type Option func(*TuringMachine)

// WithBus makes the machine publish on bus instead of a private one.
func WithBus(bus *Bus) Option {
	return func(m *TuringMachine) {
		m.bus = bus
	}
}

// WithLogger sets the machine's logger.
func WithLogger(l *log.Logger) Option {
	return func(m *TuringMachine) {
		m.logger = l
	}
}

// WithMaximumNonDeterministicSearch caps the configurations examined per build.
// Values below 1 keep the default.
func WithMaximumNonDeterministicSearch(n int) Option {
	return func(m *TuringMachine) {
		if n > 0 {
			m.maxSearch = n
		}
	}
}

// WithID overrides the generated machine identifier.
func WithID(id string) Option {
	return func(m *TuringMachine) {
		if id != "" {
			m.id = id
		}
	}
}

// MaximumNonDeterministicSearch returns the current search cap.
func (m *TuringMachine) MaximumNonDeterministicSearch() int {
	return m.maxSearch
}

// SetMaximumNonDeterministicSearch changes the search cap; values below 1 are ignored.
func (m *TuringMachine) SetMaximumNonDeterministicSearch(n int) {
	if n > 0 {
		m.maxSearch = n
	}
}

func defaultLogger() *log.Logger {
	return logger.Logger.WithPrefix("turingmachines")
}
