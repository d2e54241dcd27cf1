// Package cache provides the device-local key-value storage the client
// uses for its session token, cached user record and shadow like counts.
package cache

// Keys persisted by the client.
const (
	KeyUserToken = "userToken"
	KeyUser      = "user"
	KeyLikes     = "likes"
)

// Store is durable string-to-string storage scoped to the device. There
// are no multi-key transactions: a crash between two Set calls can leave
// keys inconsistent with each other.
type Store interface {
	// Get returns the value for key. ok is false when no value exists.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}
