// internal/core/ports/database.go
package ports

import "context"

// Database is the connection pool as the health check sees it
type Database interface {
	Ping(ctx context.Context) error
	// Stats reports pool counters keyed by name
	Stats() map[string]any
}
