// Package memory provides in-memory implementations of driven ports.
// They back tests and dry runs; nothing survives the process.
package memory
