// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package capture

import (
	"net/url"
	"strings"
)

// NormalizeSeparators rewrites backslash path separators to forward slashes.
func NormalizeSeparators(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// ServerRelativePath resolves a stored image URL to the path the classify
// endpoint expects: origin, leading slashes and a leading static/ segment
// are removed.
//
//	ServerRelativePath("http://host/static/x/y.png") == "x/y.png"
//	ServerRelativePath("images/a.png")               == "images/a.png"
func ServerRelativePath(stored string) string {
	p := NormalizeSeparators(strings.TrimSpace(stored))
	if u, err := url.Parse(p); err == nil && u.Scheme != "" && u.Host != "" {
		p = u.Path
	}
	p = strings.TrimLeft(p, "/")
	p = strings.TrimPrefix(p, "static/")
	return p
}
