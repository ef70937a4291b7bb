package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdownBasics(t *testing.T) {
	out := RenderMarkdown("# hello\n\nsome **bold** text")
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderMarkdownStripsScript(t *testing.T) {
	// goldmark 把原生 HTML 转义成实体，脚本文本留下来但已是惰性纯文本，
	// 关键是不能有存活的 script 元素
	out := RenderMarkdown("hi <script>alert(1)</script> there")
	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "hi")
}

func TestRenderMarkdownStripsEventHandlers(t *testing.T) {
	out := RenderMarkdown(`<img src="x" onerror="alert(1)">`)
	assert.NotContains(t, out, "onerror")
}
