package cmd

import (
	"fmt"
	"strings"

	"github.com/msto63/cliscript/core/log"
	"github.com/msto63/cliscript/registry"
)

// newRegistry builds the registry available to scripts run through the
// cliscript binary. The "std" module offers a few generally useful
// functions so that scripts can be tried without writing host code.
func newRegistry() (*registry.Registry, error) {
	reg, err := registry.New(registry.Options{Logger: log.Default()})
	if err != nil {
		return nil, err
	}

	std := registry.Namespace{
		"echo": func(args map[string]interface{}) (interface{}, error) {
			parts := make([]string, 0, len(args))
			for _, value := range args {
				if value == nil {
					continue
				}
				parts = append(parts, fmt.Sprintf("%v", value))
			}
			return strings.Join(parts, " "), nil
		},
		"version": func(args map[string]interface{}) (interface{}, error) {
			return fmt.Sprintf("cliscript v%s", Version), nil
		},
	}

	if err := reg.Register("std", std); err != nil {
		return nil, err
	}
	return reg, nil
}
