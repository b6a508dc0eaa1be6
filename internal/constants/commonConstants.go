package constants

type CachePrefix string

const (
	CachePrefixUser CachePrefix = "user:"
)

// Key returns the cache key for id under this prefix.
func (p CachePrefix) Key(id string) string {
	return string(p) + id
}

// Pattern is the metrics label for keys under this prefix.
func (p CachePrefix) Pattern() string {
	return string(p) + "*"
}
