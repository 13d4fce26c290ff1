// Package sink renders a computed [sheet.Layout] into output formats.
//
// # Overview
//
// A "sink" paints the grid, directives and widths of a layout. Every sink
// takes a [Document], which wraps the layout with the texts around the table
// (title, heading, footer, empty message), and returns the encoded bytes:
//
//   - PDF: the printable log sheet ([RenderPDF])
//   - HTML: a standalone page with a styled table ([RenderHTML])
//   - XLSX: a spreadsheet for logging on a tablet ([RenderXLSX])
//   - JSON: the raw layout for external tools ([RenderJSON])
//   - Text: a terminal rendering used by preview and MCP ([RenderText])
//
// Sinks never interpret directives themselves. They call
// [sheet.Layout.Resolve] and paint the resulting per-cell styles, border
// weights and merged rectangles, so the last-wins rule lives in one place.
//
// # PDF Output
//
// The PDF is A4 portrait with 1 cm side margins and 0.5 cm top and bottom
// margins. Rows joined by a vertical merge form a block that is never split
// across pages:
//
//	pdf, err := sink.RenderPDF(doc,
//	    sink.WithPDFUTF8Font("dejavu", "/usr/share/fonts/DejaVuSans.ttf"),
//	)
//
// The built-in Helvetica covers Windows-1252 only. Without a UTF-8 font the
// infinity glyph is printed as "oo"; other characters outside the code page
// are dropped.
//
// # Empty Layouts
//
// A layout without rows is not an error. Every sink prints
// [Document.EmptyMessage] in place of the table.
//
// [sheet.Layout]: github.com/matzehuels/logsheet/pkg/sheet.Layout
// [sheet.Layout.Resolve]: github.com/matzehuels/logsheet/pkg/sheet.Layout.Resolve
package sink
