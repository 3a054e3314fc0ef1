package domain

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetVertexProjectID() string
	GetVertexLocation() string
	GetSpeechVoice() string
	GetArchiveCapacity() int
	GetSpeechMaxChars() int
}

// KeyValueStore defines the persistent single-user state store. Keys map to
// single global mutable cells; writes are last-write-wins with no merge.
type KeyValueStore interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
}
