package core

// Logger is implemented by services/logger.
// args may hold errors, extra key/values (map[string]interface{}) and at most one Caller.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Caller is the authenticated identity a request runs on behalf of.
// It is resolved by the API auth layer, never by the listing engine.
type Caller struct {
	TenantID string
	UserID   string
	Username string
	Email    string
	Roles    []string
}
