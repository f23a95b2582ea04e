package xmldoc

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Element is one node of a parsed document. Text is the character data
// before the first child; Tail is the character data that follows the
// element's closing tag inside its parent.
type Element struct {
	Name     xml.Name
	Attr     []xml.Attr
	Text     string
	Tail     string
	Children []*Element
}

// AttrValue returns the value of the named attribute, or "".
func (e *Element) AttrValue(local string) string {
	for _, attr := range e.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}

// SetAttr sets or replaces an attribute on the element.
func (e *Element) SetAttr(local, value string) {
	for i, attr := range e.Attr {
		if attr.Name.Local == local {
			e.Attr[i].Value = value
			return
		}
	}
	e.Attr = append(e.Attr, xml.Attr{Name: xml.Name{Local: local}, Value: value})
}

func isNamespaceDecl(name xml.Name) bool {
	return name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns")
}

// parse reads tokens into an element tree. Namespace declarations are
// dropped from attribute lists; the decoder already resolves names to
// their URIs, and rendering re-emits declarations from the registry.
func parse(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)
	var root *Element
	var stack []*Element
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch tok := token.(type) {
		case xml.StartElement:
			element := &Element{Name: tok.Name}
			for _, attr := range tok.Attr {
				if isNamespaceDecl(attr.Name) {
					continue
				}
				element.Attr = append(element.Attr, attr)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements")
				}
				root = element
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, element)
			}
			stack = append(stack, element)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected closing tag </%s>", tok.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			current := stack[len(stack)-1]
			if n := len(current.Children); n > 0 {
				current.Children[n-1].Tail += string(tok)
			} else {
				current.Text += string(tok)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("unclosed element <%s>", stack[len(stack)-1].Name.Local)
	}
	return root, nil
}

// render writes the element using prefixes from the uri→prefix map. The
// root element additionally carries the xmlns declarations.
func render(w io.Writer, element *Element, prefixes map[string]string, isRoot bool) error {
	name := qualifiedName(element.Name, prefixes)
	if _, err := fmt.Fprintf(w, "<%s", name); err != nil {
		return err
	}
	if isRoot {
		if err := writeNamespaceDecls(w, prefixes); err != nil {
			return err
		}
	}
	for _, attr := range element.Attr {
		value := &strings.Builder{}
		if err := xml.EscapeText(value, []byte(attr.Value)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " %s=\"%s\"", qualifiedName(attr.Name, prefixes), value.String()); err != nil {
			return err
		}
	}
	if element.Text == "" && len(element.Children) == 0 {
		_, err := io.WriteString(w, "/>")
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if err := xml.EscapeText(w, []byte(element.Text)); err != nil {
		return err
	}
	for _, child := range element.Children {
		if err := render(w, child, prefixes, false); err != nil {
			return err
		}
		if err := xml.EscapeText(w, []byte(child.Tail)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "</%s>", name)
	return err
}

func qualifiedName(name xml.Name, prefixes map[string]string) string {
	if name.Space == "" {
		return name.Local
	}
	prefix, ok := prefixes[name.Space]
	if !ok || prefix == "" {
		return name.Local
	}
	return prefix + ":" + name.Local
}

func writeNamespaceDecls(w io.Writer, prefixes map[string]string) error {
	var defaultURI string
	var prefixed []string
	for uri, prefix := range prefixes {
		if prefix == "" {
			defaultURI = uri
		} else {
			prefixed = append(prefixed, fmt.Sprintf(` xmlns:%s="%s"`, prefix, uri))
		}
	}
	if defaultURI != "" {
		if _, err := fmt.Fprintf(w, ` xmlns="%s"`, defaultURI); err != nil {
			return err
		}
	}
	sort.Strings(prefixed)
	for _, decl := range prefixed {
		if _, err := io.WriteString(w, decl); err != nil {
			return err
		}
	}
	return nil
}
