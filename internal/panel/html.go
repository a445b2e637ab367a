// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package panel

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))

// Page is the data behind the history page.
type Page struct {
	History         Rendered
	Classifications []ClassificationCard
	Alert           string
}

// WriteHTML renders the history page.
func WriteHTML(w io.Writer, page Page) error {
	if err := templates.ExecuteTemplate(w, "history.html", page); err != nil {
		return fmt.Errorf("render history page: %w", err)
	}
	return nil
}
