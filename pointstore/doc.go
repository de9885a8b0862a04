// Package pointstore provides an intrusive doubly linked list of records held
// in an arena.
//
// Several List values can share one Store. Records keep their Ref for their
// whole life, whichever list they are moved to, so a Ref is a stable handle for
// the record. Splice moves a contiguous run between lists (or within one list)
// in O(1) regardless of its length, and Erase is O(1).
//
// Runs are described by a Range: the first and last elements, inclusive, and
// the number of elements between them. The count is carried by the caller
// because recomputing it would make Splice linear.
package pointstore
