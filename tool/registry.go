package tool

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownTool indicates the requested tool is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// registry stores registered tools by name.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]Tool)
)

// Register adds a tool to the registry.
// Tools should call this in their package's init() function.
// Panics if a tool with the same name is already registered.
//
// Example:
//
//	func init() {
//	    tool.Register(NewSearchTool(defaultStore))
//	}
func Register(t Tool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := t.Spec().Name
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("tool %q already registered", name))
	}
	registry[name] = t
}

// Lookup returns the named tool.
// Returns ErrUnknownTool if the tool is not registered.
func Lookup(name string) (Tool, error) {
	registryMu.RLock()
	t, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return t, nil
}

// Available returns all registered tools sorted by name.
func Available() []Tool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	tools := make([]Tool, 0, len(names))
	for _, name := range names {
		tools = append(tools, registry[name])
	}
	return tools
}

// IsRegistered checks if a tool is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, ok := registry[name]
	return ok
}

// Unregister removes a tool from the registry.
// This is primarily useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	delete(registry, name)
}

// ClearRegistry removes all registered tools.
// This is primarily useful for testing.
func ClearRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry = make(map[string]Tool)
}
