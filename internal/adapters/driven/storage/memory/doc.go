// Package memory provides in-memory implementations of the driven store ports.
// They hold state for the lifetime of the process only.
package memory
