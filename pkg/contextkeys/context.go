package contextkeys

// Custom key type to avoid collisions in context values.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB
// (pool or transaction) is stored.
const DBContextKey = contextKey("db")
