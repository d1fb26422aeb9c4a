// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

import "time"

// Face validation constants
const (
	// MinNameLength is the minimum number of characters a trimmed name needs
	// before the add workflow enables saving
	MinNameLength = 2
)

// Image constants
const (
	// ThumbnailSize is the maximum dimension (width or height) of grid thumbnails
	ThumbnailSize = 100

	// ThumbnailCacheSize is the number of encoded thumbnails kept in memory by the web server
	ThumbnailCacheSize = 256

	// MaxUploadSize is the maximum accepted size of an uploaded image (32 MB)
	MaxUploadSize = 32 << 20

	// MaxImagePixels caps width*height of an image before it is decoded (8192x8192)
	MaxImagePixels = 8192 * 8192
)

// Map constants
const (
	// MapSpanDegrees is the latitude/longitude span of the region shown around a face
	MapSpanDegrees = 0.05

	// MapZoom is the OpenStreetMap zoom level roughly matching MapSpanDegrees
	MapZoom = 14
)

// Database constants
const (
	// DefaultSQLitePath is the database file used when DATABASE_URL is unset
	DefaultSQLitePath = "faces.db"

	// ConnectTimeout bounds the initial ping of a database backend
	ConnectTimeout = 10 * time.Second
)

// Authentication constants
const (
	// UnlockReason is shown to the user when the authenticator asks for credentials
	UnlockReason = "Please authenticate yourself to unlock."
)
