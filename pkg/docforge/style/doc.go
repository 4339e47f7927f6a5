// Package style defines the value objects that describe how a node looks:
// colors, borders, fonts, alignment and text direction.
//
// All types are plain values. A Spec is never mutated in place; the With*
// helpers return modified copies, so a Spec can be shared between nodes and
// documents without coordination.
package style
