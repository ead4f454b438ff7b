// Package fsd decodes and encodes lines of the FSD protocol spoken between
// flight simulation clients and their network server.
//
// Parse turns one line into a Message; Message.String turns it back into
// the canonical line. Decoding is strict: every field that fails to convert
// is reported as a *ParseError naming the field kind and carrying the text
// that was rejected, and short lines are reported as *FieldCountError.
//
// The package performs no I/O and holds no mutable state.
package fsd
