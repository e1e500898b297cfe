package migration

// Target-side field limits.
const (
	maxNameLen     = 100
	maxDescription = 200
	maxVLANName    = 64
	maxDNSName     = 255
)

// truncate hard-limits s to the target's field length.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// sanitizeDNS filters a hostname to the characters the target accepts in a
// DNS-style field. This is independent of free-text description handling:
// the description keeps the raw value, only the dns field is filtered.
func sanitizeDNS(hostname string) string {
	out := make([]byte, 0, len(hostname))
	for i := 0; i < len(hostname); i++ {
		ch := hostname[i]
		switch {
		case ch >= 'a' && ch <= 'z',
			ch >= 'A' && ch <= 'Z',
			ch >= '0' && ch <= '9',
			ch == '*', ch == '.', ch == '_', ch == '-':
			out = append(out, ch)
		}
	}
	return truncate(string(out), maxDNSName)
}
