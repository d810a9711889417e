// Package id generates 128-bit, time-ordered identifiers for tasks and
// archive records. IDs sort lexicographically in creation order, which the
// archive keyspace relies on for newest-first scans.
package id
