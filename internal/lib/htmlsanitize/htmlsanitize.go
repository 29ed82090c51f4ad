// Package htmlsanitize strips unsafe markup from admin-authored rich text and email templates.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()

		policy.AllowElements("u", "s", "sub", "sup", "mark", "h1", "h2", "h3", "h4")
		policy.AllowAttrs("class").Globally()
		policy.AllowAttrs("style").OnElements("p", "span", "div", "h1", "h2", "h3", "h4")
		policy.AllowStyles("text-align").OnElements("p", "span", "div", "h1", "h2", "h3", "h4")
	})
	return policy
}

// Sanitize cleans html, keeping formatting, links and headings.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}
