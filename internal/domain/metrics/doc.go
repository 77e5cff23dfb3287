// Package metrics holds the pure calculation logic for financial rates and
// cross-entity aggregates (sprint, project, dashboard). Functions here take
// domain entities and return plain result structs; nothing in this package
// touches persistence or mutates its inputs.
package metrics
