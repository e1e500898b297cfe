// Package sites bootstraps target sites from the source's sections.
//
// The migration engine resolves prefix scopes against sites that already
// exist; it never creates them. Run this bootstrap once before the first
// migration. Like the engine, it is idempotent: existing sites are skipped
// by display name, so re-running it is safe.
package sites
