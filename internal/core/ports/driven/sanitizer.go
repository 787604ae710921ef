package driven

// HTMLSanitizer strips markup that is not on an allow-list.
// Stored HTML is untrusted and passes through a sanitizer before it is served.
type HTMLSanitizer interface {
	Sanitize(html string) string
}
