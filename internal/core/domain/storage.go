package domain

// Backing store keys. Each store reads and writes only its own key.
const (
	KeyTheme       = "theme"
	KeyContent     = "content"
	KeySession     = "session"
	KeyCmsSettings = "cms-settings"
)

// DefaultKeyPrefix namespaces the keys inside a shared backing store
const DefaultKeyPrefix = "folio_"
