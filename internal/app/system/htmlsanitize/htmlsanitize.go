// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// policy allows the formatting produced by the post editor (headings,
// lists, links, images, code) while stripping scripts, event handlers,
// and inline frames.
var policy = bluemonday.UGCPolicy()

// Sanitize cleans untrusted rich-text HTML before it is stored.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}

// StripTags removes all markup, leaving plain text. Used for comment
// bodies and notification text.
var stripPolicy = bluemonday.StrictPolicy()

func StripTags(s string) string {
	return stripPolicy.Sanitize(s)
}
