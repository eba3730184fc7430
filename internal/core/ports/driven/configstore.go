package driven

// ConfigStore provides persistent application configuration.
type ConfigStore interface {
	// GetString retrieves a string value, or "" if absent.
	GetString(key string) string

	// GetStringSlice retrieves a string slice value, or nil if absent.
	GetStringSlice(key string) []string

	// GetBool retrieves a boolean value, or false if absent.
	GetBool(key string) bool

	// Set stores a value and persists immediately.
	Set(key string, value any) error
}
