// Package imaging bounds raster images to a byte budget for attachment to
// a document record.
//
// Optimize scales an image down to a fixed bounding dimension, flattens
// any alpha channel onto white, and encodes to PNG. If the encoding
// overshoots a fixed soft target it is rescaled once by a square-root
// factor and re-encoded; there is no further iteration. An encoding that
// still exceeds the caller's hard ceiling is an error, never a loop.
package imaging
