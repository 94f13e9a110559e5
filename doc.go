// Package backend provides the ChatWii admin API server.

// Binaries live under cmd/: the API server (cmd/server), the operator
// CLI (cmd/chatwiictl) and the development seeder (cmd/seed). The code
// is organized into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/profanity: blocked-word cache, matcher and service
// - internal/moderation: kicks and bans
// - internal/settings: site settings with redis read-through cache
// - internal/bots: bot account management
// - internal/audit: admin action audit trail
// - internal/media: avatar catalog management
// - internal/websocket: realtime hub for kick/ban/settings events
// - internal/models: data models and database schemas
// - internal/database: database connection and migrations
// - internal/repository: data access for words and bans
// - internal/storage: file storage (S3) operations
// - internal/middleware: auth, request IDs, logging, metrics
// - internal/cache: redis client wrapper
// - internal/config: environment configuration
// - internal/logger: structured logging
// - internal/errors: API error types

// See the individual package documentation for detailed reference.
package backend
