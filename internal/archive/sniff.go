package archive

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// htmlMarkers are the byte prefixes of an HTML document. The comparison is
// case-sensitive.
var htmlMarkers = [][]byte{
	[]byte("<!DOCTYPE"),
	[]byte("<html"),
}

// LooksLikeHTML reports whether prefix starts with an HTML document marker.
func LooksLikeHTML(prefix []byte) bool {
	for _, marker := range htmlMarkers {
		if bytes.HasPrefix(prefix, marker) {
			return true
		}
	}
	return false
}

// Sniff checks the first bytes of a decompressed payload before it is
// decoded. It returns a KindFormatMismatch *Error naming path when the
// bytes begin with an HTML document marker, and nil otherwise.
func Sniff(path string, prefix []byte) error {
	if !LooksLikeHTML(prefix) {
		return nil
	}
	return &Error{
		Kind:      KindFormatMismatch,
		Path:      path,
		Detail:    "appears to be an HTML file, not a serialized data file",
		PageTitle: pageTitle(prefix),
	}
}

// pageTitle returns the text of the first <title> element in doc, or "" if
// the sniffed bytes do not contain one.
func pageTitle(doc []byte) string {
	z := html.NewTokenizer(bytes.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) != "title" {
				continue
			}
			if z.Next() != html.TextToken {
				return ""
			}
			return strings.Join(strings.Fields(string(z.Text())), " ")
		}
	}
}
