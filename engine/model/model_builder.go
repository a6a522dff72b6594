package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithTopology is an option builder that sets how the Model's vertices are assembled.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - ModelBuilderOption: a function that applies the topology option to a model
func WithTopology(topology Topology) ModelBuilderOption {
	return func(m *model) {
		m.topology = topology
	}
}
