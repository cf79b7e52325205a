package session

// Storage is string-keyed client-local persistent storage. Every
// component reads session truth through this single interface so
// alternate backing stores (in-memory for tests, a file for a
// long-lived portal process) can be substituted without touching
// callers.
type Storage interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Clear removes every stored key.
	Clear() error
}
