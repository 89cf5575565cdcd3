// Package xmlutils provides the XPath helpers used to read XML market feeds.
package xmlutils

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"gopkg.in/xmlpath.v2"
)

// Parse reads an XML document. Documents declaring a legacy encoding (e.g.
// windows-1251) are transcoded to UTF-8 on the fly.
func Parse(r io.Reader) (*xmlpath.Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	root, err := xmlpath.ParseDecoder(decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// Nodes returns the nodes matched by path under root.
func Nodes(root *xmlpath.Node, path *xmlpath.Path) []*xmlpath.Node {
	var nodes []*xmlpath.Node
	iter := path.Iter(root)
	for iter.Next() {
		nodes = append(nodes, iter.Node())
	}
	return nodes
}

// Value returns the trimmed first value of path under node, or "".
func Value(node *xmlpath.Node, path *xmlpath.Path) string {
	value, ok := path.String(node)
	if !ok {
		return ""
	}
	return CleanText(value)
}

// CleanText collapses whitespace runs into single spaces and trims the result.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
