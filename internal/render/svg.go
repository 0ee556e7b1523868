package render

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
)

// canvas accumulates SVG primitives for one fixed-size document.
type canvas struct {
	buf bytes.Buffer
}

func newCanvas(width, height float64, class string) *canvas {
	c := &canvas{}
	fmt.Fprintf(&c.buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s"`,
		num(width), num(height), num(width), num(height))
	if class != "" {
		fmt.Fprintf(&c.buf, ` class="%s"`, html.EscapeString(class))
	}
	c.buf.WriteString(">")
	return c
}

func (c *canvas) line(x1, y1, x2, y2 float64, stroke string, width float64) {
	fmt.Fprintf(&c.buf, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`,
		num(x1), num(y1), num(x2), num(y2), stroke, num(width))
}

func (c *canvas) circle(cx, cy, r float64, fill string) {
	fmt.Fprintf(&c.buf, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`, num(cx), num(cy), num(r), fill)
}

func (c *canvas) rect(x, y, w, h float64, fill string) {
	fmt.Fprintf(&c.buf, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`, num(x), num(y), num(w), num(h), fill)
}

// textAttrs are the optional presentation attributes of a text element.
type textAttrs struct {
	class  string
	anchor string
	size   int
	fill   string
	bold   bool
	hidden bool
}

func (c *canvas) text(x, y float64, content string, a textAttrs) {
	c.buf.WriteString("<text")
	if a.class != "" {
		fmt.Fprintf(&c.buf, ` class="%s"`, a.class)
	}
	fmt.Fprintf(&c.buf, ` x="%s" y="%s"`, num(x), num(y))
	if a.anchor != "" {
		fmt.Fprintf(&c.buf, ` text-anchor="%s"`, a.anchor)
	}
	fmt.Fprintf(&c.buf, ` font-family="Verdana" font-size="%d"`, a.size)
	if a.fill != "" {
		fmt.Fprintf(&c.buf, ` fill="%s"`, a.fill)
	}
	if a.bold {
		c.buf.WriteString(` font-weight="bold"`)
	}
	if a.hidden {
		c.buf.WriteString(` visibility="hidden"`)
	}
	fmt.Fprintf(&c.buf, ">%s</text>", html.EscapeString(content))
}

func (c *canvas) bytes() []byte {
	c.buf.WriteString("</svg>")
	return c.buf.Bytes()
}

// num formats coordinates without trailing zeros.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
