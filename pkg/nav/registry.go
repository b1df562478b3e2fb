package nav

// LocationDTO is the lightweight location descriptor shared with views
// and choice builders.
type LocationDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Background any    `json:"background,omitempty"`
}

// Registry is the flyweight store of locations seen so far. The cache
// registers every location it touches, so "is this destination known"
// checks never hit the data source.
type Registry struct {
	byID map[string]LocationDTO
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]LocationDTO)}
}

// Ensure registers a location descriptor. The first registration wins;
// later calls for the same id are no-ops.
func (r *Registry) Ensure(id, name string, background any) {
	if id == "" {
		return
	}
	if _, ok := r.byID[id]; ok {
		return
	}
	if name == "" {
		name = id
	}
	r.byID[id] = LocationDTO{ID: id, Name: name, Background: background}
}

// Has reports whether the location has been registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// DTO returns the registered descriptor for the id.
func (r *Registry) DTO(id string) (LocationDTO, bool) {
	dto, ok := r.byID[id]
	return dto, ok
}
