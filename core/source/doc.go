// Package source provides a read-only client over the source inventory API.
//
// The source exposes one flat collection per entity kind (sections, vrfs,
// l2domains, vlans, subnets, addresses) behind a {success, message, data}
// envelope. Deployments routinely have optional features disabled, so Fetch
// degrades a missing optional collection to an empty snapshot instead of
// failing the run.
package source
