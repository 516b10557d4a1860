// Package comparable maps expressions to canonical keys: two expressions
// get equal keys iff they are structurally identical, ignoring positions,
// formatting, grouping parentheses and comments. Literal values are keyed
// by their decoded value, so 0x1 and 1, 'a' and "a", "ab" and "a" "b"
// share a key. Values of different literal kinds never do: 1, 1.0, True
// and "1" are pairwise distinct.
package comparable
