package rollcall

import (
	"sync"
	"time"
)

// StageHook is called after a stage completes.
type StageHook func(stage Stage, elapsed time.Duration)

type hooks struct {
	mu      sync.RWMutex
	onStage []StageHook
}

func newHooks() *hooks {
	return &hooks{}
}

func (h *hooks) add(fn StageHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onStage = append(h.onStage, fn)
}

func (h *hooks) trigger(stage Stage, elapsed time.Duration) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onStage {
		fn(stage, elapsed)
	}
}
