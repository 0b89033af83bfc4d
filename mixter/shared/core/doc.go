// Package core contains the domain events and decision outcomes of the Mixter messaging domain:
// messages are quacked and may later be deleted.
//
// The set of domain events is closed. DomainEvent carries an unexported marker method,
// so only this package can declare variants, and Evolver has one method per variant,
// so every projection stops compiling when a variant is added until it handles the new one.
//
// Domain events are plain values without identity or timestamp. Envelope data such as
// message ids and occurrence time is attached by the shell when events are stored.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
