// Package model defines the data types shared across sitewalk components:
// fetched pages, extracted links, traversal results, and the reports built
// from them. Types in this package are plain data with no I/O.
package model
