// Package standard provides the wire-level constants shared by the IIIF
// presentation packages: resource type names, annotation motivations, JSON
// keys and the media formats the bundled content registry knows about.
package standard

// =============================================================================
// STANDARD MEDIA FORMATS
// =============================================================================
//
// Formats are MIME types as they appear in a content resource's "format"
// property. The content registry maps each of them to a resource type so a
// resource can be typed from its format alone.

// Image formats

// FormatJPEG is the format for JPEG images
const FormatJPEG = "image/jpeg"

// FormatPNG is the format for PNG images
const FormatPNG = "image/png"

// FormatTIFF is the format for TIFF images
const FormatTIFF = "image/tiff"

// FormatJP2 is the format for JPEG 2000 images
const FormatJP2 = "image/jp2"

// FormatWebP is the format for WebP images
const FormatWebP = "image/webp"

// FormatGIF is the format for GIF images
const FormatGIF = "image/gif"

// Audio formats

// FormatMP3 is the format for MPEG audio
const FormatMP3 = "audio/mpeg"

// FormatMP4Audio is the format for MPEG-4 audio
const FormatMP4Audio = "audio/mp4"

// FormatWAV is the format for WAV audio
const FormatWAV = "audio/wav"

// FormatOgg is the format for Ogg audio
const FormatOgg = "audio/ogg"

// FormatFLAC is the format for FLAC audio
const FormatFLAC = "audio/flac"

// Video formats

// FormatMP4 is the format for MPEG-4 video
const FormatMP4 = "video/mp4"

// FormatWebM is the format for WebM video
const FormatWebM = "video/webm"

// FormatQuickTime is the format for QuickTime video
const FormatQuickTime = "video/quicktime"

// Text formats - painted or supplemented as transcriptions, captions, etc.

// FormatPlainText is the format for plain text
const FormatPlainText = "text/plain"

// FormatHTML is the format for HTML documents
const FormatHTML = "text/html"

// FormatVTT is the format for WebVTT captions
const FormatVTT = "text/vtt"

// FormatPDF is the format for PDF documents
const FormatPDF = "application/pdf"

// Dataset formats

// FormatJSON is the format for JSON data
const FormatJSON = "application/json"

// FormatCSV is the format for CSV data
const FormatCSV = "text/csv"

// FormatXML is the format for XML data
const FormatXML = "application/xml"

// Model formats

// FormatGLTF is the format for glTF models
const FormatGLTF = "model/gltf+json"

// FormatGLB is the format for binary glTF models
const FormatGLB = "model/gltf-binary"

// FormatOBJ is the format for Wavefront OBJ models
const FormatOBJ = "model/obj"
