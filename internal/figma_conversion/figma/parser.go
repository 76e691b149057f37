package figma

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/domain"
)

// Matches figma.com/file/ABC123/Design-Name and figma.com/design/ABC123/...
var (
	fileKeyRe = regexp.MustCompile(`figma\.com/(?:file|design)/([A-Za-z0-9]+)`)
	nodeIDRe  = regexp.MustCompile(`node-id=([^&]+)`)
)

// ParseReference extracts the file key and optional node id from a Figma URL.
// The node id is URL-decoded and hyphens are normalized back to colons for
// API calls ("1-23" → "1:23"); the decoded form as it appeared in the URL is
// kept in RawNodeID. Pure and deterministic.
func ParseReference(figmaURL string) (domain.DesignReference, error) {
	m := fileKeyRe.FindStringSubmatch(figmaURL)
	if len(m) < 2 {
		return domain.DesignReference{}, domain.ErrInvalidReference
	}

	ref := domain.DesignReference{FileKey: m[1]}

	if nm := nodeIDRe.FindStringSubmatch(figmaURL); len(nm) == 2 {
		raw := nm[1]
		if decoded, err := url.QueryUnescape(raw); err == nil {
			raw = decoded
		}
		ref.RawNodeID = raw
		ref.NodeID = strings.ReplaceAll(raw, "-", ":")
	}

	return ref, nil
}

// ValidReferenceURL reports whether the URL would parse, without parsing it.
func ValidReferenceURL(figmaURL string) bool {
	return fileKeyRe.MatchString(figmaURL)
}
