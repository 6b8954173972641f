package types

// ComponentMetadata defines the essential identifying information for components within the system.
// Every stage, store and server carries one so log lines can be attributed to it.
type ComponentMetadata struct {
	ID   string // Unique identifier for the component.
	Type string // Type of the component, e.g. "LOADER" or "CORRELATION_ENGINE".
	Name string // Human-readable name for the component.
}

// Option defines a configuration option function applicable to any component T. This generic approach
// allows for flexible configuration mechanisms across different types of components.
type Option[T any] func(T)
