package model

// NoAnchorText is the placeholder used when an anchor has no visible text.
// Downstream consumers rely on every link carrying identity information,
// so an empty string is never emitted.
const NoAnchorText = "[No text]"

// Link is a single outbound hyperlink discovered on a page.
type Link struct {
	// URL is the link target resolved to an absolute URL.
	URL string `json:"url"`

	// Text is the trimmed anchor text, or NoAnchorText when the anchor
	// carried none.
	Text string `json:"text"`
}

// LinkStatus is the result of a reachability check on a single link.
// The set of values is closed: tools render these strings verbatim.
type LinkStatus string

const (
	// LinkStatusValid means the target answered a probe with a 2xx status.
	LinkStatusValid LinkStatus = "valid"

	// LinkStatusBroken means the probe failed: network error, timeout,
	// or a non-2xx status.
	LinkStatusBroken LinkStatus = "broken"

	// LinkStatusInvalidURL means the href could not be resolved to an
	// absolute URL, so no probe was attempted.
	LinkStatusInvalidURL LinkStatus = "invalid_url"
)

// LinkCheck is the reachability verdict for one distinct link target.
type LinkCheck struct {
	// URL is the probed target, or the raw href for invalid_url entries.
	URL string `json:"url"`

	// Status is one of valid, broken, or invalid_url.
	Status LinkStatus `json:"status"`
}
