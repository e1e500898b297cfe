// Package migration implements the one-directional synchronization engine
// moving routing domains, VLAN groups, VLANs, prefixes, and IP addresses
// from the source inventory to the target inventory.
//
// # Architecture
//
// The engine consists of three main components:
//
// 1. Cache: process-lifetime identity tables mapping source ids to
// target-resolvable names and ids. Built once per run from the source's
// section and routing-domain snapshots, grown opportunistically while VLANs
// migrate, and discarded at process end.
//
// 2. Migrators: one find-or-create loop per entity kind. Each pulls a full
// source snapshot, resolves every reference before writing, checks the
// target by natural key, and only then creates through the retry executor.
// A single record's failure is counted and logged, never fatal for the kind.
//
// 3. Engine: runs the migrators in fixed dependency order (routing domains,
// VLAN groups, VLANs, prefixes, addresses), owns the dry-run flag and the
// memoized reference resolutions, and aggregates per-kind counters.
//
// # Idempotence
//
// There is no persisted migration state. Safety under interruption and
// re-run comes entirely from the natural-key existence check preceding every
// create: a second run over the same snapshots creates nothing new, and a
// concurrent actor creating the same record merely turns our create into a
// skip via the duplicate classification.
package migration
