package kdtree

/*

# Dynamic point kd-tree

Tree indexes a set of points in a fixed number of dimensions. Points are
inserted, erased, hidden and shown individually or in batches, and the node
hierarchy is grown by Refine with one of the rules from the splitrule package
and collapsed again by Merge.

## Storage

All point records live in one pointstore.Store and are threaded onto exactly
one of three lists:

- committed: points pushed down to a leaf. The points of every node form one
  contiguous run of this list, the run of a left child directly precedes the
  run of its sibling.
- pending: points inserted but not yet pushed down.
- hidden: points excluded from the leaves but kept for a later Show.

Nodes live in an arena and reference each other, and the point runs, by
generation checked refs. A node is either a leaf or an intermediate. Subdivide
converts a leaf in place into an intermediate with two fresh leaf children,
MergeAt converts an intermediate back and frees its descendants.

## Update modes

In UpdateImmediate mode every mutation leaves counts and runs correct before
it returns. In UpdateLazy mode inserted points stay pending and ancestors of a
changed node are only marked invalid. Any read that observes structure (Root,
Points, Begin, Refine, Merge and friends) first commits the pending points and
recomputes the invalid nodes, so both modes report the same state.

## Cursors

A Cursor is a plain (tree, node) pair. Any mutation may free or convert the
node it refers to; re-acquire cursors from Root after mutating. Using a cursor
whose node was freed panics.

## Node bounds

Min and Max of a node bound its points along the split axis of its parent.
PrevMin and PrevMax of an intermediate are the bound of its cell along its own
split axis at the time it was subdivided, and the split position lies between
them.

The tree is not safe for concurrent use.

*/
