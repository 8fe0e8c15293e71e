package httpapi

import "strings"

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// CORS configuration. Permissive (any origin) unless origins are set.
var (
	corsEnabled        = true
	corsAllowedOrigins = []string{"*"}
	corsAllowedMethods = []string{"GET", "POST", "OPTIONS"}
	corsAllowedHeaders = []string{"*"}
)

// SetCORSOptions configures CORS behavior for the HTTP server. Empty slices
// keep the permissive defaults.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = nonEmpty(origins, []string{"*"})
	corsAllowedMethods = nonEmpty(methods, []string{"GET", "POST", "OPTIONS"})
	corsAllowedHeaders = nonEmpty(headers, []string{"*"})
}

func nonEmpty(v, def []string) []string {
	out := make([]string, 0, len(v))
	for _, s := range v {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}
