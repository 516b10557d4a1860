// Package config finds and decodes setlint.toml.
//
// The file is looked up by walking from the target path towards the
// filesystem root; the first setlint.toml wins. Missing keys fall back to
// Default(). Keys the decoder does not know about are reported as warnings,
// not errors, so older binaries keep working with newer files.
package config
