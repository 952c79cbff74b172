package transport

import "strings"

// originMarkers are the signatures of cross-origin rejection, preflight
// failure, and the generic fetch/connection errors that are empirically
// indistinguishable from cross-origin failures in restricted runtimes.
// Matching is case-insensitive substring over the full error text, which
// includes wrapped error names.
//
// This is a best-effort heuristic, not a protocol-level signal: the
// underlying platforms do not expose a machine-readable "blocked by origin
// policy" code, so the message text is all there is to go on.
var originMarkers = []string{
	"cors",
	"cross-origin",
	"access-control-allow-origin",
	"preflight",
	"failed to fetch",
	"networkerror when attempting to fetch",
	"load failed",
	"err_failed",
	"net::err_blocked",
}

// IsOriginRestricted reports whether err looks like an origin/connectivity
// restriction that the buffered transport is likely to get past. Aborted
// errors are never classified as origin-restricted.
func IsOriginRestricted(err error) bool {
	if err == nil || IsAborted(err) {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range originMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}
