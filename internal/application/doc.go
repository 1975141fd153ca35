// Package application provides application initialization and dependency wiring.
// It encapsulates the creation of the defaults store, paginator, handlers,
// routers, metrics registry and HTTP server instances, keeping the main package
// focused on CLI parsing and orchestration.
package application
