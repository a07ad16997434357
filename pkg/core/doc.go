// Package core defines the shared language of the leapmodel system.
//
// This package contains:
//   - Source metadata (DataType, Column, TableMetadata)
//   - Connection metadata (AdapterConfig, DatabaseMeta)
//   - The DocumentStore contract and its namespaces
//   - The error taxonomy shared by every other package
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
