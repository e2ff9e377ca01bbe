// Package services wires the scanner, filesystem and classifier into the
// batch counting operation behind `sloc count`.
//
// # Concurrency
//
// Counter classifies distinct files in parallel with an errgroup bounded
// by the configured worker count. Lines within one file are always
// processed in order by a single goroutine. Results are reassembled in
// input order, so output is deterministic regardless of scheduling.
package services
