// Package archive loads name lists from gzip-compressed archives.
//
// An archive is a gzip file whose payload is a serialized flat list of
// names, either a Python pickle (list or tuple) or a JSON array. Loading
// happens in three stages:
//
//   - Open the file; a missing file is a KindNotFound error.
//   - Sniff the first decompressed bytes. Archives that turn out to be HTML
//     pages, usually a repository web page saved instead of the raw file,
//     are rejected with KindFormatMismatch before any decoding is tried.
//   - Decode the payload into model.RawValue elements. Any shape other than
//     a flat sequence of scalars is a KindDecode error.
package archive
