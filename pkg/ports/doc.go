// Package ports declares the driven-side interfaces the engine depends
// on: persisted variable storage and the decoration catalog. Adapters
// under pkg/adapters implement them; the engine never imports an
// adapter directly.
package ports
