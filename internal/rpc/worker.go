package rpc

import (
	"sync"

	"github.com/supermari0/ironic-python-agent/internal/agent"
	"github.com/supermari0/ironic-python-agent/internal/hardware"
	"github.com/supermari0/ironic-python-agent/internal/procexec"
)

// Workers launches one goroutine per async command and lets tests/callers
// observe completion via Join: one background goroutine per in-flight
// agent command, each reporting its Response on a dedicated channel.
type Workers struct {
	mu      sync.Mutex
	pending map[int]chan Response
	next    int
}

func NewWorkers() *Workers {
	return &Workers{pending: make(map[int]chan Response)}
}

// Dispatch launches cmd on its own goroutine and returns the command ID to
// later Join on.
func (w *Workers) Dispatch(mgr hardware.Manager, cache *agent.ImageCache, runner procexec.CommandRunner, cmd Command) int {
	w.mu.Lock()
	id := w.next
	w.next++
	done := make(chan Response, 1)
	w.pending[id] = done
	w.mu.Unlock()

	go func() {
		done <- Dispatch(mgr, cache, runner, cmd)
	}()

	return id
}

// Join blocks until command id completes and returns its Response. The
// second return is false if id was never dispatched (or was already
// joined and reaped).
func (w *Workers) Join(id int) (Response, bool) {
	w.mu.Lock()
	done, ok := w.pending[id]
	if ok {
		delete(w.pending, id)
	}
	w.mu.Unlock()

	if !ok {
		return Response{}, false
	}

	return <-done, true
}
