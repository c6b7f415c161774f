package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/djh816/Rustle/reddit"
)

// previewTargetHeight is the display height the preview picker aims
// for when choosing among a post's image renditions.
const previewTargetHeight = 100

// renderPost renders one post card at the given width.
func renderPost(theme Theme, post reddit.Post, width int) string {
	inner := width - 4 // card border + padding
	if inner < 20 {
		inner = 20
	}

	title := theme.PostTitle.Width(inner).Render(post.Title)
	meta := theme.PostMeta.Render(fmt.Sprintf("Posted by u/%s in r/%s", post.Author, post.Subreddit))
	score := theme.PostMeta.Render(fmt.Sprintf("Score: %d", post.Score))

	lines := []string{title, meta, score}

	if link := postLink(post); link != "" {
		lines = append(lines, theme.PostLink.Width(inner).Render(link))
	}

	card := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return theme.Card.Width(width - 2).Render(card)
}

// postLink picks the line to show under the metadata: the target URL,
// or the preview image when the post is a bare image link.
func postLink(post reddit.Post) string {
	if strings.HasPrefix(post.URL, "http") {
		return post.URL
	}
	if preview := post.PreviewURL(previewTargetHeight); strings.HasPrefix(preview, "http") {
		return preview
	}
	return ""
}
