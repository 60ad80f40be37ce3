// Package domain contains the core types shared by every layer of the
// Quilt engine: template nodes, component descriptors, state variables,
// profile data and the error taxonomy.
//
// The package imports nothing outside the standard library. Parsers,
// runtimes and adapters all speak these types; none of them own them.
package domain
