// Package observable provides generic decorators that add metrics, tracing, and logging
// to core command and query handlers without touching their business logic.
package observable
