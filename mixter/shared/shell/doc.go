// Package shell provides the imperative shell around the Mixter domain core.
//
// It translates between domain events and storable events (payload and metadata JSON),
// defines the contracts shared by command handlers, query handlers, and the event bus,
// and bundles the observability helpers used to instrument them.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
