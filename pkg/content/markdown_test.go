package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseNewlines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "three newlines", in: "a\n\n\nb", want: "a\nb"},
		{name: "two newlines", in: "a\n\nb", want: "a\nb"},
		{name: "single newline kept", in: "a\nb", want: "a\nb"},
		{name: "no newlines", in: "aa", want: "aa"},
		{name: "several runs", in: "\n\na\n\n\n\nb\n\n", want: "\na\nb\n"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollapseNewlines(tt.in))
		})
	}
}

func TestToMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "aa", want: "aa"},
		{name: "paragraphs", in: "<p>one</p><p>two</p>", want: "one\n\ntwo"},
		{name: "whitespace in text", in: "<p>  hello \n   world  </p>", want: "hello world"},
		{name: "entities", in: "<p>Tom &amp; Jerry</p>", want: "Tom & Jerry"},
		{
			name: "heading and inline markup",
			in:   `<h2>Title</h2><p>Body <strong>bold</strong> and <a href="https://x.com">link</a></p>`,
			want: "## Title\n\nBody **bold** and [link](https://x.com)",
		},
		{name: "emphasis and code", in: "<p><em>soft</em> <code>x := 1</code></p>", want: "*soft* `x := 1`"},
		{name: "list", in: "<ul><li>a</li><li>b</li></ul>", want: "* a\n* b"},
		{name: "line break", in: "line1<br>line2", want: "line1\nline2"},
		{name: "preformatted", in: "<pre><code>a  b\nc</code></pre>", want: "```\na  b\nc\n```"},
		{name: "blockquote", in: "<blockquote><p>quote</p></blockquote>", want: "> quote"},
		{name: "script dropped", in: "<p>x</p><script>alert(1)</script>", want: "x"},
		{name: "link without text", in: `<a href="https://x.com"></a>`, want: ""},
		{name: "image with alt", in: `<img src="https://x.com/a.png" alt="chart">`, want: "![chart](https://x.com/a.png)"},
		{name: "image without alt", in: `<img src="https://x.com/a.png">`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMarkdown(tt.in))
		})
	}
}
