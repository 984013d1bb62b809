// Package notify delivers user-facing messages from every widget to one
// process-wide handler.
package notify

import (
	"sync"

	"github.com/goliatone/go-searchdown/pkg/logging"
)

// Kind classifies a message.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Handler receives a message and its kind.
type Handler func(text string, kind Kind)

var (
	mu      sync.RWMutex
	handler Handler
)

// SetHandler installs h for all widgets. A nil h restores the default,
// which writes the message to the default logger.
func SetHandler(h Handler) {
	mu.Lock()
	handler = h
	mu.Unlock()
}

// Show delivers text to the installed handler.
func Show(text string, kind Kind) {
	if kind == "" {
		kind = KindSuccess
	}
	mu.RLock()
	h := handler
	mu.RUnlock()

	if h != nil {
		h(text, kind)
		return
	}
	alert(text, kind)
}

func Error(text string) { Show(text, KindError) }

func alert(text string, kind Kind) {
	logger := logging.Default()
	if kind == KindError {
		logger.Error().Str("kind", string(kind)).Msg(text)
		return
	}
	logger.Info().Str("kind", string(kind)).Msg(text)
}
