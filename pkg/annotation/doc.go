// Package annotation implements model annotations: small, typed, declarative
// instructions that each transform an OLAP model in one way.
//
// Annotations are collected in ordered groups. A group is persisted as an XML
// document and replayed against a model by a Manager, which folds each
// annotation over the model in group order.
//
// Every annotation kind exposes its configurable values as a flat table of
// properties. The table is used to describe a kind as a map, populate it from a
// map, and round-trip it through the XML codec.
package annotation
