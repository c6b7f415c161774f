package reddit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/djh816/Rustle/reddit"
)

func TestPreviewURL(t *testing.T) {
	resolutions := []reddit.ImageSource{
		{URL: "https://img/60", Height: 60},
		{URL: "https://img/108", Height: 108},
		{URL: "https://img/216", Height: 216},
	}

	tests := []struct {
		name     string
		post     reddit.Post
		expected string
	}{
		{
			name:     "no preview falls back to thumbnail",
			post:     reddit.Post{Thumbnail: "https://thumb.jpg"},
			expected: "https://thumb.jpg",
		},
		{
			name: "empty image list falls back to thumbnail",
			post: reddit.Post{
				Thumbnail: "https://thumb.jpg",
				Preview:   &reddit.Preview{},
			},
			expected: "https://thumb.jpg",
		},
		{
			name: "picks the resolution closest to the target height",
			post: reddit.Post{
				Thumbnail: "https://thumb.jpg",
				Preview: &reddit.Preview{Images: []reddit.Image{{
					Source:      reddit.ImageSource{URL: "https://img/full", Height: 1080},
					Resolutions: resolutions,
				}}},
			},
			expected: "https://img/108",
		},
		{
			name: "no resolutions uses the source",
			post: reddit.Post{
				Thumbnail: "https://thumb.jpg",
				Preview: &reddit.Preview{Images: []reddit.Image{{
					Source: reddit.ImageSource{URL: "https://img/full", Height: 1080},
				}}},
			},
			expected: "https://img/full",
		},
		{
			name: "unescapes ampersands in preview urls",
			post: reddit.Post{
				Preview: &reddit.Preview{Images: []reddit.Image{{
					Source: reddit.ImageSource{URL: "https://img/full?a=1&amp;b=2", Height: 90},
				}}},
			},
			expected: "https://img/full?a=1&b=2",
		},
		{
			name: "blank source falls back to thumbnail",
			post: reddit.Post{
				Thumbnail: "self",
				Preview: &reddit.Preview{Images: []reddit.Image{{
					Source: reddit.ImageSource{Height: 90},
				}}},
			},
			expected: "self",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.post.PreviewURL(100))
		})
	}
}
