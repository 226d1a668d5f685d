package badger

// Key prefixes for stored data.
const (
	workPrefix = "work"
)

// makeWorkKey generates the storage key for a work by its natural key.
// Natural keys are unique corpus-wide, so they map 1:1 onto storage keys.
func makeWorkKey(naturalKey string) []byte {
	return []byte(workPrefix + ":" + naturalKey)
}
