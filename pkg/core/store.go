package core

import "context"

// Namespace partitions the document store.
type Namespace string

// Store namespaces.
const (
	// NamespaceAnnotationGroups holds ordinary annotation groups keyed by group name.
	NamespaceAnnotationGroups Namespace = "ModelAnnotationGroup"
	// NamespaceSharedDimensions holds shared-dimension groups keyed by group name.
	NamespaceSharedDimensions Namespace = "SharedDimensionGroup"
	// NamespaceDatabaseMeta holds connection metadata keyed by connection name.
	NamespaceDatabaseMeta Namespace = "DatabaseMeta"
)

// DocumentStore is a namespaced key-value store of opaque documents.
//
// Each Put and Delete must be atomic: no partial document is ever observable.
// There is no multi-document transaction.
type DocumentStore interface {
	// Put creates or replaces the document stored under namespace+name.
	Put(ctx context.Context, ns Namespace, name string, doc []byte) error

	// Get returns the document, or an error wrapping ErrNotFound.
	Get(ctx context.Context, ns Namespace, name string) ([]byte, error)

	// List returns the document names in a namespace, sorted ascending.
	List(ctx context.Context, ns Namespace) ([]string, error)

	// Delete removes the document. Deleting a missing name is not an error.
	Delete(ctx context.Context, ns Namespace, name string) error
}
