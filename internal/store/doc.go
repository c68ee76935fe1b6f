// Package store defines the persistence interfaces and shared error
// vocabulary used by the service layer. Concrete implementations live in
// internal/platform (PostgreSQL). Keeping the interfaces here lets services
// depend on behavior without knowing about the backing engine.
package store
