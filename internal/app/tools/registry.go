package tools

import (
	"fmt"
	"strings"
)

// Registry is the fixed set of tools exposed to the language model. It is
// populated once at construction and immutable afterwards; lookups of
// unknown names fail closed.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry(list ...Tool) *Registry {
	r := &Registry{
		tools: make(map[string]Tool, len(list)),
	}
	for _, t := range list {
		if t == nil {
			continue
		}
		if _, dup := r.tools[t.Name()]; dup {
			continue // first registration wins
		}
		r.tools[t.Name()] = t
		r.order = append(r.order, t.Name())
	}
	return r
}

// Get returns the tool for name, or false for unknown names.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Describe renders the tool list for the model's operating instructions,
// one "- name: description" line per tool in registration order.
func (r *Registry) Describe() string {
	var b strings.Builder
	for _, name := range r.order {
		fmt.Fprintf(&b, "- %s: %s\n", name, r.tools[name].Description())
	}
	return b.String()
}

const directivePrefix = "TOOL:"

// ParseDirective recognizes a tool invocation in model output. The contract
// is a single line of the form "TOOL: name | argument"; anything else is
// ordinary free text.
func ParseDirective(reply string) (name, arg string, ok bool) {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, directivePrefix) {
		return "", "", false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, directivePrefix))
	if rest == "" {
		return "", "", false
	}

	if i := strings.Index(rest, "|"); i >= 0 {
		name = strings.TrimSpace(rest[:i])
		arg = strings.TrimSpace(rest[i+1:])
	} else {
		name = strings.Fields(rest)[0]
	}

	if name == "" {
		return "", "", false
	}
	return name, arg, true
}

// UnavailableMessage is the deterministic fail-closed reply for unregistered
// tool names.
func UnavailableMessage(name string) string {
	return fmt.Sprintf("Maaf, kemampuan '%s' tidak tersedia saat ini.", name)
}
