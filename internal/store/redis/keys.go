package redis

const (
	// KeyPrefix namespaces every key written by the service.
	KeyPrefix = "cardsmith:"
	// KeyConfig holds the JSON encoded affiliate settings.
	KeyConfig = KeyPrefix + "config"
	// KeyHistory is the LIST of JSON encoded history items, newest first.
	KeyHistory = KeyPrefix + "history"
)

// ConfigKey returns the Redis key for the affiliate settings
func ConfigKey() string {
	return KeyConfig
}

// HistoryKey returns the Redis key for the card history list
func HistoryKey() string {
	return KeyHistory
}
