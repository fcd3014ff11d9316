package analysis

import (
	"testing"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestInlineText(t *testing.T) {
	src := []byte("Checkout flow")
	txt := ast.NewTextSegment(text.NewSegment(0, 8))
	str := ast.NewString([]byte("inventory"))

	if got := inlineText(txt, src); got != "Checkout" {
		t.Errorf("text node = %q", got)
	}
	if got := inlineText(str, src); got != "inventory" {
		t.Errorf("string node = %q", got)
	}
	if got := inlineText(ast.NewParagraph(), src); got != "" {
		t.Errorf("paragraph = %q, want empty", got)
	}
}

func TestNodeText_StringChildren(t *testing.T) {
	src := []byte("Payment ")
	h := ast.NewHeading(2)
	h.AppendChild(h, ast.NewTextSegment(text.NewSegment(0, 8)))
	h.AppendChild(h, ast.NewString([]byte("Gateway")))

	if got := nodeText(h, src); got != "Payment Gateway" {
		t.Errorf("nodeText = %q, want %q", got, "Payment Gateway")
	}
}
