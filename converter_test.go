package kbscrape_test

import (
	"testing"

	"github.com/fwojciec/kbscrape"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "collapses blank lines", in: "a\n\n\n\n\nb", want: "a\n\nb"},
		{name: "strips comments", in: "a<!-- hidden\nmultiline -->b", want: "ab"},
		{name: "collapses spaces", in: "a    b  c", want: "a b c"},
		{name: "unwraps empty links", in: "see [docs]() now", want: "see docs now"},
		{name: "keeps real links", in: "[docs](/docs)", want: "[docs](/docs)"},
		{name: "trims", in: "\n\n  text  \n", want: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, kbscrape.NormalizeMarkdown(tt.in))
		})
	}
}
