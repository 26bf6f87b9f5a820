package eagle

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OpenTraceLab/ledring/internal/fsutil"
)

// Well-known paths below the <eagle> root element.
const (
	PathPlain    = "drawing/board/plain"
	PathSignals  = "drawing/board/signals"
	PathElements = "drawing/board/elements"
)

// Document is a parsed Eagle file. Prolog holds everything before the root
// element (XML declaration, DOCTYPE, whitespace), Epilog everything after.
type Document struct {
	Prolog []*Node
	Root   *Node
	Epilog []*Node
}

// ParseFile reads and parses an Eagle file.
func ParseFile(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(bufio.NewReader(file))
}

// ParseString parses an Eagle document held in a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads an Eagle document from r.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	doc := &Document{}

	var stack []*Node
	appendNode := func(n *Node) {
		switch {
		case len(stack) > 0:
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
		case doc.Root == nil:
			doc.Prolog = append(doc.Prolog, n)
		default:
			doc.Epilog = append(doc.Epilog, n)
		}
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Kind: ElementNode, Tag: qualified(t.Name)}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: qualified(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, fmt.Errorf("multiple root elements: <%s> after <%s>", n.Tag, doc.Root.Tag)
				}
				doc.Root = n
			} else {
				appendNode(n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			appendNode(&Node{Kind: TextNode, Data: string(t)})
		case xml.Comment:
			appendNode(&Node{Kind: CommentNode, Data: string(t)})
		case xml.ProcInst:
			appendNode(&Node{Kind: ProcInstNode, Tag: t.Target, Data: string(t.Inst)})
		case xml.Directive:
			appendNode(&Node{Kind: DirectiveNode, Data: string(t)})
		}
	}

	if doc.Root == nil {
		return nil, fmt.Errorf("empty document: no root element")
	}
	if doc.Root.Tag != "eagle" {
		return nil, fmt.Errorf("not an Eagle file: expected <eagle>, got <%s>", doc.Root.Tag)
	}
	return doc, nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Find resolves a path below the root element.
func (d *Document) Find(path string) *Node {
	return d.Root.Find(path)
}

// Plain returns the board's non-electrical drawing section.
func (d *Document) Plain() *Node { return d.Find(PathPlain) }

// Signals returns the board's net section.
func (d *Document) Signals() *Node { return d.Find(PathSignals) }

// Signal returns the <signal> with the given name.
func (d *Document) Signal(name string) *Node {
	signals := d.Signals()
	if signals == nil {
		return nil
	}
	for _, s := range signals.Elements("signal") {
		if s.Attr("name") == name {
			return s
		}
	}
	return nil
}

// WriteTo serializes the document.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}
	for _, n := range d.Prolog {
		writeNode(cw, n)
	}
	writeNode(cw, d.Root)
	for _, n := range d.Epilog {
		writeNode(cw, n)
	}
	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, cw.w.Flush()
}

// Bytes returns the serialized document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	d.WriteTo(&buf)
	return buf.Bytes()
}

// WriteFile saves the document to filename. The data is written to a
// temporary file in the same directory which then replaces filename, so a
// failed save leaves the previous file intact.
func (d *Document) WriteFile(filename string) error {
	return fsutil.WriteFile(filename, func(w io.Writer) error {
		_, err := d.WriteTo(w)
		return err
	})
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

func (c *countingWriter) str(s string) {
	io.WriteString(c, s)
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#10;", "\r", "&#13;", "\t", "&#9;",
	)
)

func writeNode(w *countingWriter, n *Node) {
	switch n.Kind {
	case TextNode:
		w.str(textEscaper.Replace(n.Data))
	case CommentNode:
		w.str("<!--" + n.Data + "-->")
	case ProcInstNode:
		w.str("<?" + n.Tag)
		if n.Data != "" {
			w.str(" " + n.Data)
		}
		w.str("?>")
	case DirectiveNode:
		w.str("<!" + n.Data + ">")
	case ElementNode:
		w.str("<" + n.Tag)
		for _, a := range n.Attrs {
			w.str(" " + a.Name + `="`)
			w.str(attrEscaper.Replace(a.Value))
			w.str(`"`)
		}
		if len(n.Children) == 0 {
			w.str("/>")
			return
		}
		w.str(">")
		for _, c := range n.Children {
			writeNode(w, c)
		}
		w.str("</" + n.Tag + ">")
	}
}
