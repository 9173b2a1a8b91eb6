// Package domain defines the building listing values shared across the
// repository, server and client layers.
package domain

// Building is one listed building. Two buildings are the same building when
// their names match.
type Building struct {
	Name string
}

// String returns the building name.
func (b Building) String() string {
	return b.Name
}

// ViewState is the full set of buildings a client is showing.
//
// A ViewState is replaced wholesale on every update; callers never mutate the
// slice of a published state.
type ViewState struct {
	Buildings []Building
}

// Names returns the building names in display order.
func (s ViewState) Names() []string {
	names := make([]string, 0, len(s.Buildings))
	for _, building := range s.Buildings {
		names = append(names, building.Name)
	}
	return names
}

// First returns the first building in display order.
func (s ViewState) First() (Building, bool) {
	if len(s.Buildings) == 0 {
		return Building{}, false
	}
	return s.Buildings[0], true
}

// FilterByName returns a new state holding only buildings named exactly name.
func (s ViewState) FilterByName(name string) ViewState {
	filtered := make([]Building, 0, len(s.Buildings))
	for _, building := range s.Buildings {
		if building.Name == name {
			filtered = append(filtered, building)
		}
	}
	return ViewState{Buildings: filtered}
}

// Clone returns a copy that does not share the buildings slice.
func (s ViewState) Clone() ViewState {
	if s.Buildings == nil {
		return ViewState{Buildings: []Building{}}
	}
	buildings := make([]Building, len(s.Buildings))
	copy(buildings, s.Buildings)
	return ViewState{Buildings: buildings}
}

// NewViewState builds a state from building names, preserving order.
func NewViewState(names ...string) ViewState {
	buildings := make([]Building, 0, len(names))
	for _, name := range names {
		buildings = append(buildings, Building{Name: name})
	}
	return ViewState{Buildings: buildings}
}
