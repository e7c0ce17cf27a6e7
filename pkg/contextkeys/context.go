package contextkeys

// Custom key type to avoid collisions with other packages.
type contextKey string

// DBContextKey is the key under which the *gorm.DB handle (pool or
// transaction) is stored in the request context.
const DBContextKey = contextKey("db")

// CurrentUserKey is the key under which the identity resolver stores the
// resolved *models.User. Absent means the request is anonymous.
const CurrentUserKey = contextKey("current_user")
