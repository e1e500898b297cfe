// Package remote defines the tagged error type shared by both API clients.
//
// Every failure leaving the source or target client is wrapped exactly once
// in a *remote.Error carrying a Kind: transient failures are worth retrying,
// semantic failures never are, and anything unrecognized defaults to
// non-retryable. Classification happens at the client boundary, so migrators
// and the retry executor only ever inspect the tag, never the message text.
package remote
