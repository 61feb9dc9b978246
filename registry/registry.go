// File: registry.go
// Title: Host Module Registry
// Description: Implements the registry that maps module names to host
//              namespaces of callable functions. Scripts reference modules
//              through use declarations; actions resolve against the first
//              successfully loaded module, mirroring the activation order
//              of the declarations.
// Author: msto63
// Version: v0.1.0
// Created: 2026-08-20
// Modified: 2026-08-25
//
// Change History:
// - 2026-08-20 v0.1.0: Initial registry implementation

package registry

import (
	"path"
	"sort"
	"strings"
	"sync"

	cerror "github.com/msto63/cliscript/core/error"
	"github.com/msto63/cliscript/core/log"
	"github.com/msto63/cliscript/utils/stringx"
)

// Function is a callable action implementation. It receives the marshalled
// argument map and returns an arbitrary result value.
type Function func(args map[string]interface{}) (interface{}, error)

// Namespace maps dotted function paths (e.g. "copy", "fs.remove") to
// their implementations within one host module
type Namespace map[string]Function

// Registry maps module names to host namespaces with thread-safe access
type Registry struct {
	mutex     sync.RWMutex
	providers map[string]Namespace
	loaded    []string
	logger    *log.Logger
	options   Options
}

// Options configures registry behavior
type Options struct {
	Logger *log.Logger
}

// New creates a new registry with the given options
func New(opts Options) (*Registry, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Registry{
		providers: make(map[string]Namespace),
		logger:    opts.Logger.WithField("component", "cliscript-registry"),
		options:   opts,
	}, nil
}

// Register makes a host namespace available under the given module name.
// Registration alone does not activate the module; a script activates it
// through a use declaration.
func (r *Registry) Register(module string, ns Namespace) error {
	if stringx.IsBlank(module) {
		return cerror.New("module name cannot be empty").
			WithCode(cerror.CodeModuleLoad).
			WithOperation("registry.Register")
	}
	if ns == nil {
		return cerror.Newf("namespace for module %q cannot be nil", module).
			WithCode(cerror.CodeModuleLoad).
			WithOperation("registry.Register")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.providers[module]; exists {
		return cerror.Newf("module %q already registered", module).
			WithCode(cerror.CodeModuleLoad).
			WithOperation("registry.Register")
	}

	r.providers[module] = ns

	r.logger.Debug("module registered", log.Fields{
		"module":    module,
		"functions": len(ns),
	})
	return nil
}

// Load activates a registered module for a script. A trailing file
// extension on the name is stripped, so `use "files.py"` activates the
// module registered as "files". Loading an unknown module fails with a
// module-load error that callers are expected to log and tolerate.
func (r *Registry) Load(module string) error {
	name := strings.TrimSuffix(module, path.Ext(module))

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.providers[name]; !exists {
		return cerror.Newf("could not load module %q", name).
			WithCode(cerror.CodeModuleLoad).
			WithOperation("registry.Load").
			WithDetail("module", module)
	}

	for _, loaded := range r.loaded {
		if loaded == name {
			return nil
		}
	}
	r.loaded = append(r.loaded, name)

	r.logger.Debug("module loaded", log.Fields{"module": name})
	return nil
}

// Resolve looks up a dotted function path in the first loaded module.
// Later modules are never consulted; the first use declaration decides
// which namespace action bindings resolve against.
func (r *Registry) Resolve(functionPath string) (Function, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if len(r.loaded) == 0 {
		return nil, cerror.Newf("cannot resolve %q: no modules loaded", functionPath).
			WithCode(cerror.CodeFunctionResolution).
			WithOperation("registry.Resolve")
	}

	ns := r.providers[r.loaded[0]]
	fn, ok := ns[functionPath]
	if !ok {
		return nil, cerror.Newf("function %q not found in module %q", functionPath, r.loaded[0]).
			WithCode(cerror.CodeFunctionResolution).
			WithOperation("registry.Resolve").
			WithDetail("module", r.loaded[0])
	}

	return fn, nil
}

// Loaded returns the active module names in activation order
func (r *Registry) Loaded() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]string, len(r.loaded))
	copy(result, r.loaded)
	return result
}

// Registered returns the names of all registered modules, sorted
func (r *Registry) Registered() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]string, 0, len(r.providers))
	for name := range r.providers {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Has reports whether a module is registered under the given name
func (r *Registry) Has(module string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, exists := r.providers[module]
	return exists
}
