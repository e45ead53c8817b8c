package tools

import (
	"fmt"
	"strings"
	"sync"
)

// Catalog is the in-memory tool registry. It is seeded once at startup but
// keeps registration open for later additions.
type Catalog struct {
	mu    sync.RWMutex
	tools map[string]Tool
	specs map[string]Spec
	order []string
}

// NewCatalog constructs a catalog seeded with the provided tools. Invalid
// entries are skipped.
func NewCatalog(tools []Tool) *Catalog {
	catalog := &Catalog{
		tools: make(map[string]Tool),
		specs: make(map[string]Spec),
	}
	for _, tool := range tools {
		_ = catalog.Register(tool)
	}
	return catalog
}

// Register adds a tool to the catalog. Duplicate names return an error.
func (c *Catalog) Register(tool Tool) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	spec := tool.Spec()
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return fmt.Errorf("tool name is empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.tools[name]; exists {
		return fmt.Errorf("tool %s already registered", name)
	}
	c.tools[name] = tool
	c.specs[name] = spec
	c.order = append(c.order, name)
	return nil
}

// Lookup returns the tool by exact name. A false result means "unknown tool",
// a recoverable condition the caller must surface back to the model.
func (c *Catalog) Lookup(name string) (Tool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tool, ok := c.tools[name]
	return tool, ok
}

// Specs returns a snapshot of the tool specifications in registration order.
func (c *Catalog) Specs() []Spec {
	c.mu.RLock()
	defer c.mu.RUnlock()

	specs := make([]Spec, 0, len(c.order))
	for _, name := range c.order {
		specs = append(specs, c.specs[name])
	}
	return specs
}
