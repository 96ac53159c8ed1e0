// Package imaging loads hologram images and renders the results of phase
// extraction for the MCP server and the command-line tool.
//
// Holograms are decoded from PNG, JPEG, GIF, BMP or TIFF files and converted
// to 8-bit grayscale on load. The grayscale copy is what the phase extractor
// consumes; color information is discarded.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Spectrum previews use centered spectrum coordinates: the zero frequency
// sits at (width/2, height/2).
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Cached images are shared
// between callers and must be treated as read-only; SubGray returns views into
// them, not copies.
//
// # Outputs
//
// Tool results carry images as base64-encoded PNG. Save writes PNG, JPEG or
// BMP files chosen by extension.
package imaging
