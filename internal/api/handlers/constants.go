package handlers

const (
	// Response header telling callers whether a compile came from the cache
	cacheHeader = "X-Cache"
	cacheHit    = "HIT"
	cacheMiss   = "MISS"

	maxHistoryPageSize = 100 // Maximum page size for compile history
)
