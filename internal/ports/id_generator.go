package ports

// Source of solution identifiers, owned by whoever orchestrates runs.
type IDGenerator interface {
	NewID() string
}
