package listing

import (
	"fmt"
	"sort"
)

// Registry holds the resources served by the admin tables.
// It is filled once at startup and only read afterwards.
type Registry struct {
	resources map[string]Resource
}

func NewRegistry(resources ...Resource) *Registry {
	reg := &Registry{resources: make(map[string]Resource, len(resources))}
	for _, res := range resources {
		reg.Register(res)
	}
	return reg
}

// Register panics on a duplicate key or an invalid contract: both are programming errors.
func (reg *Registry) Register(res Resource) {
	key := res.Key()
	if _, ok := reg.resources[key]; ok {
		panic(fmt.Sprintf("listing: resource %q registered twice", key))
	}
	if err := res.Contract().Validate(); err != nil {
		panic(fmt.Sprintf("listing: resource %q: %v", key, err))
	}
	reg.resources[key] = res
}

func (reg *Registry) Get(key string) (Resource, bool) {
	res, ok := reg.resources[key]
	return res, ok
}

// Keys returns the registered keys, sorted.
func (reg *Registry) Keys() []string {
	keys := make([]string, 0, len(reg.resources))
	for key := range reg.resources {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
