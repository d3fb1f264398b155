package contextkeys

type ContextKey string

const (
	// CallerIDContextKey carries the asserted caller user id. The surrounding
	// application is responsible for its authenticity.
	CallerIDContextKey ContextKey = "caller_id"
)
