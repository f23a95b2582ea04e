// Package xmldoc loads, edits, and rewrites namespaced XML documents.
// Files compressed with gzip are handled transparently, and path lookups
// inject the document's default namespace into unprefixed steps so that
// callers can write "body/entry" instead of spelling out the URI.
package xmldoc

import (
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"jobkit/internal/logging"
)

// DefaultNamespaceKey names the registry entry for the root element's
// own namespace.
const DefaultNamespaceKey = "DEFAULT"

// Document is an editable XML tree bound to a file on disk.
type Document struct {
	out        *logging.Logger
	filename   string
	root       *Element
	Namespaces map[string]string
}

// Load parses filename into a Document. The namespaces map assigns
// prefixes (keys) to namespace URIs for lookups and for rendering; Load
// adds a DefaultNamespaceKey entry for the root element's namespace.
// When the file does not parse as XML it is retried through gzip.
func Load(out *logging.Logger, filename string, namespaces map[string]string) (*Document, error) {
	out.Info(fmt.Sprintf("Loading %s...", filename))
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	root, err := parse(bytes.NewReader(content))
	if err != nil {
		// probably compressed
		reader, gzErr := gzip.NewReader(bytes.NewReader(content))
		if gzErr != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}
		defer reader.Close()
		root, err = parse(reader)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}
	}

	registry := map[string]string{}
	for key, uri := range namespaces {
		registry[key] = uri
	}
	registry[DefaultNamespaceKey] = root.Name.Space

	return &Document{
		out:        out,
		filename:   filename,
		root:       root,
		Namespaces: registry,
	}, nil
}

// Root returns the document's root element.
func (d *Document) Root() *Element { return d.root }

// SubElement appends a child named tag to parent and returns it. A nil
// parent targets the root. The nsKey selects a namespace from the
// registry; DefaultNamespaceKey is the usual choice, and "" creates an
// element with no namespace at all.
func (d *Document) SubElement(parent *Element, tag, nsKey string) *Element {
	if parent == nil {
		parent = d.root
	}
	var uri string
	if nsKey != "" {
		uri = d.Namespaces[nsKey]
	}
	child := &Element{Name: xml.Name{Space: uri, Local: tag}}
	parent.Children = append(parent.Children, child)
	return child
}

// Find evaluates a simple slash-separated path against the document and
// returns all matches. Paths may start with ".//" (any depth) or "./";
// steps without an explicit prefix get the default namespace injected.
func (d *Document) Find(path string) []*Element {
	return d.FindNS(path, DefaultNamespaceKey)
}

// FindNS is Find with an explicit namespace key for unprefixed steps.
// An empty key disables injection and matches namespace-less names.
func (d *Document) FindNS(path, nsKey string) []*Element {
	path = strings.TrimPrefix(path, ".")
	path = injectNamespaceKey(path, nsKey)
	d.out.Debug(fmt.Sprintf("searching for path %q", path))

	anyDepth := false
	switch {
	case strings.HasPrefix(path, "//"):
		anyDepth = true
		path = path[2:]
	case strings.HasPrefix(path, "/"):
		path = path[1:]
	}

	steps := strings.Split(path, "/")
	names := make([]xml.Name, 0, len(steps))
	for _, step := range steps {
		if step == "" {
			continue
		}
		names = append(names, d.resolveStep(step))
	}
	if len(names) == 0 {
		return nil
	}

	// Paths are relative to the root element: "./x" selects the root's
	// x children, ".//x" selects x at any depth below the root.
	var matches []*Element
	if anyDepth {
		for _, child := range d.root.Children {
			walk(child, func(element *Element) {
				if element.Name == names[0] {
					matches = append(matches, collect(element, names[1:])...)
				}
			})
		}
		return matches
	}
	return collect(d.root, names)
}

func injectNamespaceKey(path, nsKey string) string {
	if nsKey == "" || strings.Contains(path, ":") {
		return path
	}
	var prefix string
	switch {
	case strings.HasPrefix(path, "//"):
		prefix, path = "//", path[2:]
	case strings.HasPrefix(path, "/"):
		prefix, path = "/", path[1:]
	}
	steps := strings.Split(path, "/")
	for i, step := range steps {
		if step != "" {
			steps[i] = nsKey + ":" + step
		}
	}
	return prefix + strings.Join(steps, "/")
}

func (d *Document) resolveStep(step string) xml.Name {
	key, local, found := strings.Cut(step, ":")
	if !found {
		return xml.Name{Local: step}
	}
	return xml.Name{Space: d.Namespaces[key], Local: local}
}

func collect(element *Element, rest []xml.Name) []*Element {
	if len(rest) == 0 {
		return []*Element{element}
	}
	var matches []*Element
	for _, child := range element.Children {
		if child.Name == rest[0] {
			matches = append(matches, collect(child, rest[1:])...)
		}
	}
	return matches
}

func walk(element *Element, visit func(*Element)) {
	visit(element)
	for _, child := range element.Children {
		walk(child, visit)
	}
}

// Save rewrites the document to the file it was loaded from.
func (d *Document) Save() error {
	return d.SaveAs(d.filename)
}

// SaveAs writes the document to filename with an XML declaration.
func (d *Document) SaveAs(filename string) error {
	d.out.Info(fmt.Sprintf("Saving XML to %s...", filename))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}
	if err := d.WriteTo(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteTo renders the document to w.
func (d *Document) WriteTo(w io.Writer) error {
	if _, err := io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"); err != nil {
		return err
	}
	prefixes := map[string]string{}
	for key, uri := range d.Namespaces {
		if uri == "" {
			continue
		}
		if key == DefaultNamespaceKey {
			prefixes[uri] = ""
			continue
		}
		if _, taken := prefixes[uri]; !taken {
			prefixes[uri] = key
		}
	}
	if err := render(w, d.root, prefixes, true); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
