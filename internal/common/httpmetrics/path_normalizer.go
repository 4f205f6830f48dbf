package httpmetrics

import "strings"

// routeShapes maps a first path segment to the shape its parameters take.
// Paths that fall outside the router (404s, scanners) are folded onto these
// shapes so the path label stays bounded.
var routeShapes = map[string][]string{
	"auth":      {"{action}"},
	"profile":   {"{field}", "{username}"},
	"following": {"{username}"},
	"articles":  {"{articleId}"},
	"article":   nil,
	"health":    nil,
	"metrics":   nil,
}

const unmatched = "/{unmatched}"

func NormalizePath(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "/"
	}

	parts := strings.Split(trimmed, "/")
	shape, known := routeShapes[parts[0]]
	if !known {
		return unmatched
	}

	out := []string{"", parts[0]}
	for i, part := range parts[1:] {
		if part == "" {
			continue
		}
		if i >= len(shape) {
			out = append(out, "{extra}")
			break
		}
		out = append(out, shape[i])
	}
	return strings.Join(out, "/")
}
