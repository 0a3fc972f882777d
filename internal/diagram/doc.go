// Package diagram renders diagram sources into image files.
//
// Two backends implement Renderer:
//   - Kroki posts Mermaid source to a Kroki server and stores the response.
//     Service failures degrade to a placeholder SVG so the build goes on.
//   - Diagrams runs a Python helper script that uses the `diagrams` package.
//     Any failure is fatal.
//
// File names are content addressed: the same source, format and title
// always map to the same file, so repeated builds overwrite in place.
package diagram
