package remote_test

import (
	"errors"
	"fmt"
	"testing"

	"ipam-migrator/core/remote"

	"github.com/stretchr/testify/assert"
)

func TestClassify_ByStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   remote.Kind
	}{
		{"BadGateway", 502, remote.KindTransient},
		{"ServiceUnavailable", 503, remote.KindTransient},
		{"GatewayTimeout", 504, remote.KindTransient},
		{"TooManyRequests", 429, remote.KindTransient},
		{"RequestTimeout", 408, remote.KindTransient},
		{"BadRequest", 400, remote.KindSemantic},
		{"Conflict", 409, remote.KindSemantic},
		{"Unprocessable", 422, remote.KindSemantic},
		{"ServerError", 500, remote.KindUnknown},
		{"Forbidden", 403, remote.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := remote.Classify("POST ipam/vrfs", tt.status, "", nil)
			assert.Equal(t, tt.want, err.Kind)
		})
	}
}

func TestClassify_ByMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    remote.Kind
	}{
		{"ConnectionReset", "read tcp: connection reset by peer", remote.KindTransient},
		{"Refused", "dial tcp: connection refused", remote.KindTransient},
		{"Timeout", "request timed out", remote.KindTransient},
		{"Unreachable", "network is unreachable", remote.KindTransient},
		{"AlreadyExists", "Prefix already exists in VRF", remote.KindSemantic},
		{"Duplicate", "Duplicate entry for key", remote.KindSemantic},
		{"UniqueConstraint", "violates unique constraint", remote.KindSemantic},
		{"Invalid", "invalid value for field vid", remote.KindSemantic},
		{"Required", "this field is required", remote.KindSemantic},
		{"MustBe", "vid must be between 1 and 4094", remote.KindSemantic},
		{"NotAllowed", "operation not allowed", remote.KindSemantic},
		{"Unmatched", "something odd happened", remote.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := remote.Classify("GET subnets", 0, tt.message, nil)
			assert.Equal(t, tt.want, err.Kind)
		})
	}
}

func TestPredicates(t *testing.T) {
	transient := remote.Classify("GET vlans", 503, "service unavailable", nil)
	dup := remote.Classify("POST ipam/prefixes", 400, "prefix already exists", nil)
	invalid := remote.Classify("POST ipam/vlans", 400, "invalid vid", nil)

	assert.True(t, remote.IsTransient(transient))
	assert.False(t, remote.IsSemantic(transient))

	assert.True(t, remote.IsSemantic(dup))
	assert.True(t, remote.IsDuplicate(dup))

	assert.True(t, remote.IsSemantic(invalid))
	assert.False(t, remote.IsDuplicate(invalid))

	// Predicates see through fmt.Errorf wrapping.
	wrapped := fmt.Errorf("creating vrf: %w", transient)
	assert.True(t, remote.IsTransient(wrapped))

	assert.False(t, remote.IsTransient(errors.New("plain")))
	assert.False(t, remote.IsDuplicate(nil))
}
