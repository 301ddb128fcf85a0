package sim

import "sort"

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Component is a named part of the simulated machine whose state can be
// inspected while the simulation runs.
type Component interface {
	Named

	// Snapshot returns a copy of the component state that is safe to read
	// from another goroutine.
	Snapshot() any
}

// A Simulation keeps track of the components that make up a simulated
// machine.
type Simulation struct {
	components    []Component
	compNameIndex map[string]int
}

// NewSimulation creates a new simulation.
func NewSimulation() *Simulation {
	return &Simulation{
		compNameIndex: make(map[string]int),
	}
}

// RegisterComponent registers a component with the simulation.
func (s *Simulation) RegisterComponent(c Component) {
	compName := c.Name()
	if _, found := s.compNameIndex[compName]; found {
		panic("component " + compName + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[compName] = len(s.components) - 1
}

// GetComponentByName returns the component with the given name. The bool
// return value indicates whether the component is registered.
func (s *Simulation) GetComponentByName(name string) (Component, bool) {
	i, found := s.compNameIndex[name]
	if !found {
		return nil, false
	}

	return s.components[i], true
}

// Components returns all the registered components.
func (s *Simulation) Components() []Component {
	return s.components
}

// ComponentNames returns the names of all registered components, sorted.
func (s *Simulation) ComponentNames() []string {
	names := make([]string, 0, len(s.components))
	for _, c := range s.components {
		names = append(names, c.Name())
	}

	sort.Strings(names)

	return names
}
