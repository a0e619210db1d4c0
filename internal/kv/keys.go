package kv

// Key layout. One JSON blob per key, by convention.
const (
	// Collection blobs (arrays of records), used by the local store adapter.
	KeyPrefixCollection = "collection:"

	// Current session marker (serialized user), written by local identity.
	KeySession = "session:current"

	// Auth token issued by a remote backend, attached as a bearer token.
	KeyAuthToken = "session:token"

	// Filter preference keys, one per dimension.
	KeyPrefixFilter  = "filters:"
	KeyFilterSearch  = KeyPrefixFilter + "search"
	KeyFilterCat     = KeyPrefixFilter + "category"
	KeyFilterPricing = KeyPrefixFilter + "pricing"
	KeyFilterPop     = KeyPrefixFilter + "popularity"
	KeyFilterSort    = KeyPrefixFilter + "sort"

	// Client-local tool-id sets.
	KeyFavorites  = "favorites"
	KeyComparison = "comparison"

	// Dark-mode preference.
	KeyTheme = "theme:dark"

	// Capped ring buffers, oldest evicted first.
	KeyAnalyticsEvents = "analytics:events"
	KeyErrorLog        = "errors:log"

	// Chatbot transcript.
	KeyChatTranscript = "chat:transcript"
)

// CollectionKey returns the blob key for a named collection.
func CollectionKey(collection string) string {
	return KeyPrefixCollection + collection
}
