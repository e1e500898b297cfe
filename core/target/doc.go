// Package target provides a mutable client over the target inventory API.
//
// Each collection (vrfs, vlan-groups, vlans, prefixes, ip-addresses and the
// read-only sites) supports natural-key filtered lookup, create, and partial
// update over the target's paginated REST interface. Every failure is wrapped
// into a classified remote.Error at this boundary, so callers decide between
// retry, skip, and error without parsing response text themselves.
package target
