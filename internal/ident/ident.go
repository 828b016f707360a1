// Package ident derives stable record identifiers from note file names.
package ident

import "github.com/google/uuid"

// namespace is the fixed UUIDv5 namespace for the whole system. Changing it
// would re-key every record that has no explicit id in its frontmatter.
var namespace = uuid.MustParse("c3a6d8e0-8b4a-4f3e-9d2c-1a5b7c9e0f1a")

// FromFileName returns the deterministic identifier for a note file name
// (without the .md extension). The same name always maps to the same id,
// independent of file content.
func FromFileName(name string) string {
	return uuid.NewSHA1(namespace, []byte(name)).String()
}
