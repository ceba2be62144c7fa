// Package toast shows short best-effort messages to the user.
package toast

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Notifier displays a transient message. Delivery is best effort.
type Notifier interface {
	Show(msg string)
}

// Func adapts a function to Notifier.
type Func func(msg string)

// Show calls f.
func (f Func) Show(msg string) { f(msg) }

// Nop discards every message.
var Nop Notifier = Func(func(string) {})

// Log writes toasts to a logger at info level.
type Log struct {
	log logrus.FieldLogger
}

// NewLog creates a Notifier backed by log. Fields are the caller's.
func NewLog(log logrus.FieldLogger) *Log {
	return &Log{log: log}
}

// Show logs msg.
func (l *Log) Show(msg string) {
	l.log.Info(msg)
}

// Recorder keeps every message for later inspection.
type Recorder struct {
	mu   sync.Mutex
	msgs []string
}

// Show records msg.
func (r *Recorder) Show(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

// Last returns the most recent message, or "".
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return ""
	}
	return r.msgs[len(r.msgs)-1]
}

// Multi fans a message out to several notifiers.
type Multi []Notifier

// Show forwards msg to every notifier.
func (m Multi) Show(msg string) {
	for _, n := range m {
		if n != nil {
			n.Show(msg)
		}
	}
}
