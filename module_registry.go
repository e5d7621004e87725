package edunet

import (
	"sort"
	"sync"
)

// moduleRegistry maps a protocol specific type code to the module handling it.
// The modules are not owned by the registry.
type moduleRegistry struct {
	modules map[uint16]Module
	mu      sync.RWMutex
}

func newModuleRegistry() *moduleRegistry {
	return &moduleRegistry{modules: map[uint16]Module{}}
}

func (r *moduleRegistry) register(typeCode uint16, module Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.modules[typeCode] = module
}

func (r *moduleRegistry) lookup(typeCode uint16) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[typeCode]
	return m, ok
}

// typeCodes returns the registered type codes in ascending order.
func (r *moduleRegistry) typeCodes() []uint16 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]uint16, 0, len(r.modules))
	for k := range r.modules {
		codes = append(codes, k)
	}

	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
