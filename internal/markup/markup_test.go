package markup

import (
	"strconv"
	"strings"
	"testing"

	"github.com/runoshun/flowsync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		style      Style
		want       string
		wantCursor int
	}{
		{"bold", "make it bold", 8, 12, StyleBold, "make it **bold**", 16},
		{"italic", "so soft", 3, 7, StyleItalic, "so _soft_", 9},
		{"code", "run go test", 4, 11, StyleCode, "run `go test`", 13},
		{"bullet", "item", 0, 4, StyleBullet, "\n- item", 7},
		{"link with selection", "docs", 0, 4, StyleLink, "[docs](url)", 10},
		{"link without selection", "see ", 4, 4, StyleLink, "see [link text](url)", 15},
		{"clamped bounds", "abc", -5, 99, StyleBold, "**abc**", 7},
		{"swapped bounds", "abc", 3, 0, StyleCode, "`abc`", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cursor := Wrap(tt.text, tt.start, tt.end, tt.style)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCursor, cursor)
		})
	}
}

func TestHasMarkup(t *testing.T) {
	assert.True(t, HasMarkup("this is **important**"))
	assert.True(t, HasMarkup("use `make`"))
	assert.True(t, HasMarkup("- first\n- second"))
	assert.True(t, HasMarkup("see [docs](https://example.com)"))
	assert.True(t, HasMarkup("ping @[Alex Morgan](1)"))
	assert.False(t, HasMarkup("plain text only"))
	assert.False(t, HasMarkup("a - b"))
}

func TestMentions(t *testing.T) {
	ids := Mentions("@[Alex Morgan](1) and @[Morgan Chen](2)")
	assert.Equal(t, []string{"1", "2"}, ids)
	assert.Empty(t, Mentions("nobody"))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"bold", "**done**", []string{"<strong>done</strong>"}},
		{"italic", "_soon_", []string{"<em>soon</em>"}},
		{"code", "run `make`", []string{"<code>make</code>"}},
		{"list", "- a\n- b", []string{"<ul>", "<li>a</li>", "<li>b</li>"}},
		{"link", "[docs](https://example.com)", []string{`<a href="https://example.com">docs</a>`}},
		{"mention", "thanks @[Alex Morgan](1)", []string{`<span class="mention">@Alex Morgan</span>`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.in)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}

func TestRender_MentionsDoNotMatchUserText(t *testing.T) {
	tests := []string{
		"literal MENTIONXTOKEN then @[Alex](1)",
		"literal \uE0000\uE001 then @[Alex](1)",
	}

	for _, in := range tests {
		got, err := Render(in)
		require.NoError(t, err)
		assert.Contains(t, got, `then <span class="mention">@Alex</span>`)
		assert.Equal(t, 1, strings.Count(got, `class="mention"`))
	}
}

func TestRender_ManyMentions(t *testing.T) {
	in := ""
	for i := 0; i < 12; i++ {
		in += "@[M" + strconv.Itoa(i) + "](" + strconv.Itoa(i) + ") "
	}

	got, err := Render(in)
	require.NoError(t, err)
	for i := 0; i < 12; i++ {
		assert.Contains(t, got, "@M"+strconv.Itoa(i)+"</span>")
	}
}

func TestParseStyle(t *testing.T) {
	for _, s := range []Style{StyleBold, StyleItalic, StyleCode, StyleBullet, StyleLink} {
		got, err := ParseStyle(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStyle("underline")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestRender_DropsRawHTML(t *testing.T) {
	got, err := Render("<script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, got, "<script>")
}
