// Package profile maps profile names to capability allow-lists for
// the Claude Code CLI. Built-in profiles cover the common use cases;
// a project can add or override profiles through a YAML file.
package profile

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dbankscard/claude-swarm/internal/claude"
)

// All is the sentinel profile meaning unrestricted: no allow-list is
// passed to the CLI at all.
const All = "all"

// DefaultProfilesFile is the project-level profile override file.
const DefaultProfilesFile = ".swarm_profiles.yaml"

// builtins are the stock profiles. Tool names follow the CLI's
// capability vocabulary.
var builtins = map[string][]string{
	"build": {
		"Read", "Write", "Edit", "Glob", "Grep", "Bash", "AskUserQuestion",
	},
	"research": {
		"Read", "Glob", "Grep", "WebSearch", "WebFetch",
	},
	"code": {
		"Read", "Write", "Edit", "Glob", "Grep", "Bash",
	},
	"readonly": {
		"Read", "Glob", "Grep",
	},
}

// Registry resolves profile names and explicit tool lists into the
// allow-list passed to the invocation client.
type Registry struct {
	profiles map[string][]string
}

// NewRegistry returns a registry holding the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string][]string, len(builtins))}
	for name, tools := range builtins {
		r.profiles[name] = append([]string(nil), tools...)
	}
	return r
}

// profilesFile is the YAML shape of a profile override file.
type profilesFile struct {
	Profiles map[string][]string `yaml:"profiles"`
}

// LoadFile merges profiles from a YAML file over the registry.
// File entries win over built-ins of the same name. A missing file is
// not an error; a malformed one is.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read profiles file %s: %w", path, err)
	}

	var f profilesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse profiles file %s: %w", path, err)
	}

	for name, tools := range f.Profiles {
		if name == All {
			return fmt.Errorf("profiles file %s: %q is reserved", path, All)
		}
		r.profiles[name] = append([]string(nil), tools...)
	}

	return nil
}

// Names returns the registered profile names plus the sentinel,
// sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles)+1)
	for name := range r.profiles {
		names = append(names, name)
	}
	names = append(names, All)
	sort.Strings(names)
	return names
}

// Get returns the tool list for a profile.
func (r *Registry) Get(name string) ([]string, bool) {
	tools, ok := r.profiles[name]
	return tools, ok
}

// Resolve combines a profile name and an explicit tool list into one
// allow-list. Entries in tools that name a profile expand to that
// profile's tools; the literal "all" anywhere makes the result
// unrestricted. Duplicates collapse, first occurrence wins the
// position. An unknown profile name is a caller error.
func (r *Registry) Resolve(profileName string, tools []string) (claude.ToolList, error) {
	if strings.EqualFold(profileName, All) {
		return claude.ToolList{All: true}, nil
	}

	var names []string

	if profileName != "" {
		expanded, ok := r.profiles[profileName]
		if !ok {
			return claude.ToolList{}, fmt.Errorf("unknown profile %q (available: %s)",
				profileName, strings.Join(r.Names(), ", "))
		}
		names = append(names, expanded...)
	}

	for _, t := range tools {
		if strings.EqualFold(t, All) {
			return claude.ToolList{All: true}, nil
		}
		if expanded, ok := r.profiles[t]; ok {
			names = append(names, expanded...)
			continue
		}
		names = append(names, t)
	}

	seen := make(map[string]bool, len(names))
	unique := names[:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			unique = append(unique, n)
		}
	}

	return claude.ToolList{Names: unique}, nil
}
