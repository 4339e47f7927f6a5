// Package opc assembles and reads Open Packaging Conventions containers:
// the zip archives behind .docx and .pptx files.
//
// A Package collects parts, their content types and the relationship graph
// between them. Verify checks that every part is declared in the content
// type manifest and reachable from the package root, and that no
// relationship points to a missing part. WriteTo produces a deterministic
// archive: identical packages give identical bytes.
package opc
