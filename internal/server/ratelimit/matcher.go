package ratelimit

import (
	"strings"
)

// MatchEndpoint resolves a request path and method to an endpoint
// configuration, or nil when none applies. Exact path matches win over
// prefix matches; a configured path ending in "/" matches any path under
// it (e.g. "/v1/matching/" covers "/v1/matching/recommendations").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks are never throttled
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Limit: 0, Window: 0, Burst: 0}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
