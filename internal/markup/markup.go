// Package markup handles the restricted comment markup: **bold**, _italic_,
// `code`, "- " bullets, [text](url) links and @[Name](id) mentions.
package markup

import (
	"bytes"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/runoshun/flowsync/internal/domain"
)

// Style is a formatting action applied to a selection.
type Style int

const (
	StyleBold Style = iota
	StyleItalic
	StyleCode
	StyleBullet
	StyleLink
)

var styleNames = map[Style]string{
	StyleBold:   "bold",
	StyleItalic: "italic",
	StyleCode:   "code",
	StyleBullet: "bullet",
	StyleLink:   "link",
}

// String returns the style name accepted by ParseStyle.
func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStyle converts a style name into a Style.
func ParseStyle(name string) (Style, error) {
	for s, n := range styleNames {
		if n == name {
			return s, nil
		}
	}
	return 0, domain.NewValidationError("style", "unknown style "+name+" (bold, italic, code, bullet, link)", nil)
}

// Mention placeholders are built from private-use runes, which are
// stripped from the input before rendering.
const (
	mentionOpen  = '\uE000'
	mentionClose = '\uE001'
)

var (
	mentionPattern = regexp.MustCompile(`@\[([^\]]+)\]\((\w+)\)`)
	markupPattern  = regexp.MustCompile("\\*\\*[^*]+\\*\\*|_[^_]+_|`[^`]+`|(?m:^- )|\\[[^\\]]+\\]\\([^)]+\\)|@\\[[^\\]]+\\]\\(\\w+\\)")
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// Wrap applies style to the selection text[start:end] and returns the new
// text together with the cursor position after the inserted markup.
// Out-of-range bounds are clamped.
func Wrap(text string, start, end int, style Style) (string, int) {
	start, end = clamp(start, len(text)), clamp(end, len(text))
	if start > end {
		start, end = end, start
	}
	before, sel, after := text[:start], text[start:end], text[end:]

	switch style {
	case StyleBold:
		return before + "**" + sel + "**" + after, end + 4
	case StyleItalic:
		return before + "_" + sel + "_" + after, end + 2
	case StyleCode:
		return before + "`" + sel + "`" + after, end + 2
	case StyleBullet:
		return before + "\n- " + sel + after, end + 3
	case StyleLink:
		if sel == "" {
			return before + "[link text](url)" + after, start + 11
		}
		return before + "[" + sel + "](url)" + after, end + 6
	default:
		return text, end
	}
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// HasMarkup reports whether text uses any of the supported constructs.
func HasMarkup(text string) bool {
	return markupPattern.MatchString(text)
}

// Mentions returns the member IDs mentioned in text, in order of appearance.
func Mentions(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[2])
	}
	return ids
}

// Render converts text to HTML. Raw HTML in the input is dropped.
func Render(text string) (string, error) {
	// Mentions are not markdown; swap them for placeholders that survive
	// rendering, then substitute the final markup.
	text = strings.Map(func(r rune) rune {
		if r == mentionOpen || r == mentionClose {
			return -1
		}
		return r
	}, text)

	var mentions []string
	src := mentionPattern.ReplaceAllStringFunc(text, func(s string) string {
		name := mentionPattern.FindStringSubmatch(s)[1]
		mentions = append(mentions, name)
		return mentionToken(len(mentions) - 1)
	})

	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}

	out := strings.TrimSpace(buf.String())
	for i, name := range mentions {
		out = strings.Replace(out, mentionToken(i),
			`<span class="mention">@`+html.EscapeString(name)+`</span>`, 1)
	}
	return out, nil
}

func mentionToken(i int) string {
	return string(mentionOpen) + strconv.Itoa(i) + string(mentionClose)
}
