package rws

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Resource is one entry from an RWS XHTML response.
//
// The controller answers GET requests with XHTML lists of the form
//
//	<li class="ios-signal li-item" title="DO1">
//	  <a href="/rw/iosystem/signals/Local/DRV_1/DO1" rel="self"></a>
//	  <span class="name">DO1</span>
//	  <span class="type">DO</span>
//	  <span class="lvalue">1</span>
//	</li>
//
// which decodes to a Resource with Class "ios-signal", Title "DO1", Self set
// to the href and Fields {"name": "DO1", "type": "DO", "lvalue": "1"}.
type Resource struct {
	// Class is the first class token of the li element, identifying the
	// resource type.
	Class string

	// Title is the li title attribute, usually the resource name.
	Title string

	// Self is the href of the rel="self" anchor, when present.
	Self string

	// Fields maps span class names to their text content.
	Fields map[string]string
}

// Field returns the named field, or "" when absent.
func (r *Resource) Field(name string) string {
	return r.Fields[name]
}

// Float returns the named field parsed as a float64.
func (r *Resource) Float(name string) (float64, error) {
	raw, ok := r.Fields[name]
	if !ok {
		return 0, fmt.Errorf("rws: resource %q has no field %q", r.Class, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("rws: field %q: %w", name, err)
	}
	return v, nil
}

// Int returns the named field parsed as an int.
func (r *Resource) Int(name string) (int, error) {
	raw, ok := r.Fields[name]
	if !ok {
		return 0, fmt.Errorf("rws: resource %q has no field %q", r.Class, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("rws: field %q: %w", name, err)
	}
	return v, nil
}

// xmlNode is a generic XML element used to walk XHTML payloads without
// committing to one document shape per endpoint.
type xmlNode struct {
	XMLName xml.Name
	Class   string    `xml:"class,attr"`
	Title   string    `xml:"title,attr"`
	Href    string    `xml:"href,attr"`
	Rel     string    `xml:"rel,attr"`
	Text    string    `xml:",chardata"`
	Nodes   []xmlNode `xml:",any"`
}

// parseResources decodes all li entries from an XHTML payload, in document
// order.
func parseResources(body []byte) ([]Resource, error) {
	var root xmlNode
	if err := xml.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("rws: parse response: %w", err)
	}

	var out []Resource
	collectResources(&root, &out)
	return out, nil
}

// parseResource decodes the first li entry with the given class token.
func parseResource(body []byte, class string) (*Resource, error) {
	resources, err := parseResources(body)
	if err != nil {
		return nil, err
	}
	for i := range resources {
		if resources[i].Class == class {
			return &resources[i], nil
		}
	}
	return nil, fmt.Errorf("rws: response contains no %q resource", class)
}

func collectResources(n *xmlNode, out *[]Resource) {
	if n.XMLName.Local == "li" {
		*out = append(*out, decodeListItem(n))
		return
	}
	for i := range n.Nodes {
		collectResources(&n.Nodes[i], out)
	}
}

func decodeListItem(n *xmlNode) Resource {
	r := Resource{
		Class:  firstClassToken(n.Class),
		Title:  n.Title,
		Fields: make(map[string]string),
	}
	for i := range n.Nodes {
		child := &n.Nodes[i]
		switch child.XMLName.Local {
		case "span":
			if child.Class != "" {
				r.Fields[firstClassToken(child.Class)] = strings.TrimSpace(child.Text)
			}
		case "a":
			if child.Rel == "self" || r.Self == "" {
				r.Self = child.Href
			}
		}
	}
	return r
}

// firstClassToken returns the leading token of a class attribute; the
// controller appends layout tokens such as "li-item" after the type token.
func firstClassToken(class string) string {
	class = strings.TrimSpace(class)
	if i := strings.IndexByte(class, ' '); i >= 0 {
		return class[:i]
	}
	return class
}

// parseSpanMap flattens every classed span in the document into one map.
// Error payloads place their code/msg spans inside a status div rather than
// a list item, so the li-oriented parser misses them.
func parseSpanMap(body []byte) map[string]string {
	var root xmlNode
	if err := xml.Unmarshal(body, &root); err != nil {
		return nil
	}
	fields := make(map[string]string)
	collectSpans(&root, fields)
	return fields
}

func collectSpans(n *xmlNode, fields map[string]string) {
	if n.XMLName.Local == "span" && n.Class != "" {
		key := firstClassToken(n.Class)
		if _, seen := fields[key]; !seen {
			fields[key] = strings.TrimSpace(n.Text)
		}
	}
	for i := range n.Nodes {
		collectSpans(&n.Nodes[i], fields)
	}
}
