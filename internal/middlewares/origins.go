package middlewares

import "strings"

// OriginPolicy is the ordered cross-origin allow-list.
// A pattern ending in "*" matches every origin that extends the part before it,
// so "http://localhost:*" admits any port on localhost. Other patterns match exactly.
type OriginPolicy struct {
	patterns []string
}

func NewOriginPolicy(patterns []string) *OriginPolicy {
	p := &OriginPolicy{}
	for _, pattern := range patterns {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			p.patterns = append(p.patterns, pattern)
		}
	}
	return p
}

// Allowed reports whether the origin may read our responses
func (p *OriginPolicy) Allowed(origin string) bool {

	if origin == "" {
		return false
	}

	for _, pattern := range p.patterns {
		prefix, wildcard := strings.CutSuffix(pattern, "*")
		if !wildcard {
			if origin == pattern {
				return true
			}
			continue
		}

		if len(origin) > len(prefix) && strings.HasPrefix(origin, prefix) {
			return true
		}
	}

	return false
}

// Patterns returns a copy of the allow-list
func (p *OriginPolicy) Patterns() []string {
	return append([]string(nil), p.patterns...)
}
