// Package tree is the in-memory element tree that callers build before a
// document is serialized.
//
// Every node owns its children exclusively. Attaching a node that already
// has a parent fails with ErrAlreadyAttached; a node must be removed from
// its old parent first. This makes accidental sharing of a subtree between
// two places impossible.
//
// Nodes are constructed with the New* functions, linked with AppendChild
// and styled with SetStyle. Tables additionally support MergeSpan, which
// validates the whole region before it changes anything.
package tree
