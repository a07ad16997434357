// Package olap holds the logical model that annotations and auto-modeling write into.
//
// A Model owns the logical columns of its data source, an ordered list of
// dimensions (each with hierarchies and levels), an ordered list of
// name-unique measures, calculated members, links to shared dimensions and
// the relational categories. Structural changes go through methods that
// return the created entity so observers can react to them; the package
// itself carries no change-notification plumbing.
package olap
