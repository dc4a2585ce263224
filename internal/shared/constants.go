package shared

const (
	HeaderRequestID = "X-Request-ID"

	CacheNoStore   = "no-cache, must-revalidate, max-age=0"
	CacheImmutable = "public, max-age=31536000, immutable"

	APIPrefix = "/api/v1"
)

// staticExtensions are served with the immutable cache policy.
var staticExtensions = map[string]bool{
	".js": true, ".css": true, ".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".svg": true, ".webp": true, ".avif": true, ".ico": true,
	".woff": true, ".woff2": true, ".ttf": true, ".pdf": true, ".mp3": true,
}
