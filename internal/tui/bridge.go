package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibscroll/internal/sequence"
)

// programRef is a shared reference to the tea.Program.
// bubbletea copies the model on every Update, so the dispatcher needs a
// pointer that survives copies in order to reach the running program.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It reports false, dropping msg, when no
// program is attached.
func (r *programRef) Send(msg tea.Msg) bool {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p == nil {
		return false
	}
	p.Send(msg)
	return true
}

// deliveryMsg carries a generator completion into the Update loop, where it
// is run. This makes the Update loop the generator's caller context.
type deliveryMsg struct {
	run func()
}

// Dispatcher returns a sequence.Dispatcher that posts each completion to the
// program as a deliveryMsg. Dispatch blocks until the program accepts the
// message or has exited.
func (r *programRef) Dispatcher() sequence.Dispatcher {
	return sequence.DispatcherFunc(func(fn func()) {
		r.Send(deliveryMsg{run: fn})
	})
}
