package cache

import "fmt"

// KeyBuilder produces the cache keys for one entity namespace. Keys are
// built in exactly one place so the three namespaces (entity, list, count)
// cannot collide by formatting accident.
type KeyBuilder struct {
	singular string
	plural   string
}

// NewKeyBuilder creates a key builder for an entity namespace, e.g.
// NewKeyBuilder("product", "products").
func NewKeyBuilder(singular, plural string) KeyBuilder {
	return KeyBuilder{singular: singular, plural: plural}
}

// Entity returns the key for a single cached entity, e.g. "product:7".
func (k KeyBuilder) Entity(id int64) string {
	return fmt.Sprintf("%s:%d", k.singular, id)
}

// All returns the key for the cached full listing, e.g. "products:all".
func (k KeyBuilder) All() string {
	return k.plural + ":all"
}

// CountByUser returns the key for a cached per-user count, e.g.
// "products:count:user:7".
func (k KeyBuilder) CountByUser(userID int64) string {
	return fmt.Sprintf("%s:count:user:%d", k.plural, userID)
}

// Namespace returns the metric label for this builder's namespace.
func (k KeyBuilder) Namespace() string {
	return k.singular
}
