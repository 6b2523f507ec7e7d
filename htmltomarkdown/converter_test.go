package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/kbscrape"
	"github.com/fwojciec/kbscrape/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>Hello, world!</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Hello, world!")
	})

	t.Run("uses ATX headings", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<h1>Title</h1><h2>Subtitle</h2><h3>Section</h3>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Subtitle")
		assert.Contains(t, md, "### Section")
		assert.NotContains(t, md, "===")
	})

	t.Run("uses dash bullets", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<ul><li>One</li><li>Two</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- One")
		assert.Contains(t, md, "- Two")
	})

	t.Run("fences code blocks", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<pre><code class="language-go">fmt.Println("hi")</code></pre>`)

		require.NoError(t, err)
		assert.Contains(t, md, "```go")
		assert.Contains(t, md, `fmt.Println("hi")`)
	})

	t.Run("renders strikethrough", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p><del>old</del> <s>gone</s> <strike>struck</strike> new</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "~~old~~")
		assert.Contains(t, md, "~~gone~~")
		assert.Contains(t, md, "~~struck~~")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>Visit <a href="https://example.com">Example</a> now.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[Example](https://example.com)")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<table><thead><tr><th>Name</th></tr></thead><tbody><tr><td>Go</td></tr></tbody></table>`)

		require.NoError(t, err)
		assert.Contains(t, md, "| Name |")
		assert.Contains(t, md, "| Go")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("  \n ")

		require.Error(t, err)
		assert.Equal(t, kbscrape.EINVALID, kbscrape.ErrorCode(err))
	})
}
