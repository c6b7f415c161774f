package reddit

import "strings"

// Post is a single listing entry. Immutable once decoded.
type Post struct {
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Subreddit string   `json:"subreddit"`
	Score     int      `json:"score"`
	URL       string   `json:"url"`
	Thumbnail string   `json:"thumbnail"`
	Preview   *Preview `json:"preview,omitempty"`
}

// Preview is the optional preview image set attached to a post.
type Preview struct {
	Images []Image `json:"images"`
}

// Image is one preview image: the full-size source plus downscaled
// variants ordered small to large.
type Image struct {
	Source      ImageSource   `json:"source"`
	Resolutions []ImageSource `json:"resolutions"`
}

// ImageSource is a single rendition of a preview image.
type ImageSource struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
}

// PreviewURL returns the post's best image URL for the given display
// height: the preview resolution closest to target, else the first
// resolution, else the full-size source, else the thumbnail. Reddit
// HTML-escapes ampersands inside preview URLs, so those are undone.
func (p Post) PreviewURL(targetHeight int) string {
	if p.Preview == nil || len(p.Preview.Images) == 0 {
		return p.Thumbnail
	}

	image := p.Preview.Images[0]
	best := image.Source
	bestDistance := -1
	for _, res := range image.Resolutions {
		distance := res.Height - targetHeight
		if distance < 0 {
			distance = -distance
		}
		if bestDistance < 0 || distance < bestDistance {
			best = res
			bestDistance = distance
		}
	}

	if best.URL == "" {
		return p.Thumbnail
	}
	return strings.ReplaceAll(best.URL, "&amp;", "&")
}

// Listing response envelope: data.children[].data are the posts and
// data.after is the pagination token (absent on the last page).
type listingResponse struct {
	Data struct {
		Children []struct {
			Data Post `json:"data"`
		} `json:"children"`
		After string `json:"after"`
	} `json:"data"`
}

type subredditListingResponse struct {
	Data struct {
		Children []struct {
			Data struct {
				DisplayName string `json:"display_name"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type authResponse struct {
	AccessToken string `json:"access_token"`
}

type authErrorResponse struct {
	Error string `json:"error"`
}
