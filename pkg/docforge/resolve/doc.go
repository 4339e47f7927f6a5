// Package resolve translates node styles and tree structure into the
// schema-ordered property sets the serializer writes.
//
// A Resolver walks up from a node to its containers to decide every
// attribute. Borders are decided per edge with the precedence
// cell > row > table > resolver default. Explicit overrides recorded on a
// node win over its declared style; when two requests disagree the last
// one wins and a warning diagnostic is recorded.
package resolve
