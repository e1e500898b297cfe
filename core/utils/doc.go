// Package utils provides type conversion helpers for loosely typed API
// payloads. The source inventory returns most numbers and flags as strings,
// while JSON decoding of the target's responses yields float64; these
// helpers normalize both without call sites repeating type switches.
package utils
