// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  At boot cmd/web calls
// Mount, which hands every component its Deps (when it implements
// Initializer) and lets it add routes to the root router.

package component

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/feedback/internal/form"
)

// Deps are the process-wide services a component may use.
type Deps struct {
	Submitter form.Submitter // relay service in production
	Guard     *form.Guard
	Log       *zap.SugaredLogger
}

// Initializer is optional.  If a Component implements it, Mount calls
// Init once before Routes.
type Initializer interface {
	Init(Deps) error
}

// Component contract.
//
// Routes adds BOTH page and API endpoints directly to the root router, e.g:
//
//	r.Get("/feedback", c.page)
//	r.Mount("/api", c.api.Routes())
type Component interface {
	Name() string
	Routes(r chi.Router)
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Mount initialises and routes every registered component.
func Mount(r chi.Router, deps Deps) error {
	for _, c := range All() {
		if in, ok := c.(Initializer); ok {
			if err := in.Init(deps); err != nil {
				return fmt.Errorf("component %s: init: %w", c.Name(), err)
			}
		}
		c.Routes(r)
		if deps.Log != nil {
			deps.Log.Debugw("component mounted", "component", c.Name())
		}
	}
	return nil
}
