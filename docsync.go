// Package docsync fetches, filters and keeps in sync local snapshots of
// documentation pulled from git repositories, archives and local folders.
// Each configured docset is materialised under a stable directory that a
// separate search layer reads.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., git/, sqlite/, zerolog/).
package docsync
