package haxe

import "sync"

// Capabilities is the live table of display-protocol methods the running
// compiler process understands. The table is replaced wholesale whenever
// the compiler is (re)started, so callers must ask per request and never
// cache the answer.
type Capabilities struct {
	mu      sync.RWMutex
	methods map[string]bool
}

// NewCapabilities creates an empty capability table.
func NewCapabilities() *Capabilities {
	return &Capabilities{methods: make(map[string]bool)}
}

// Supports reports whether the compiler advertises the given method.
func (c *Capabilities) Supports(method string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.methods[method]
}

// Replace swaps in the method list advertised by a freshly started
// compiler process.
func (c *Capabilities) Replace(methods []string) {
	next := make(map[string]bool, len(methods))
	for _, m := range methods {
		next[m] = true
	}
	c.mu.Lock()
	c.methods = next
	c.mu.Unlock()
}

// Clear drops all advertised methods, e.g. while the compiler restarts.
func (c *Capabilities) Clear() {
	c.mu.Lock()
	c.methods = make(map[string]bool)
	c.mu.Unlock()
}
