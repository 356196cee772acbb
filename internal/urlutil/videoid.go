// Package urlutil extracts and canonicalizes video identifiers from the
// several URL shapes YouTube accepts, and provides the regex fallback used
// when a watch page's embedded JSON cannot be parsed.
package urlutil

import (
	"fmt"
	"regexp"
)

// idPatterns mirrors the three accepted URL shapes in order: ?v=/ v/
// youtu.be short links, /embed/ players, and /shorts/ pages.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/v/|youtu\.be/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:embed/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:shorts/)([a-zA-Z0-9_-]{11})`),
}

// videoIDLiteral matches a bare 11-character video ID with nothing else,
// so ExtractVideoID also accepts an ID passed in directly.
var videoIDLiteral = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// videoIDInJSON is the fallback used by expanders when scanning raw page
// text for embedded `"videoId":"..."` tokens.
var videoIDInJSON = regexp.MustCompile(`"videoId"\s*:\s*"([a-zA-Z0-9_-]{11})"`)

// ExtractVideoID pulls an 11-character video ID out of any of the accepted
// URL shapes, or out of a bare ID string. It returns an error rather than
// ("", false) so callers can wrap it into ErrInvalidSeed directly.
func ExtractVideoID(s string) (string, error) {
	if videoIDLiteral.MatchString(s) {
		return s, nil
	}
	for _, p := range idPatterns {
		if m := p.FindStringSubmatch(s); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("no video id found in %q", s)
}

// FindAllVideoIDs scans arbitrary page text for `"videoId":"..."` tokens,
// used as the fallback extraction path when a watch page's ytInitialData
// blob cannot be located or parsed as JSON. Order of first appearance is
// preserved and duplicates are dropped.
func FindAllVideoIDs(pageText string) []string {
	matches := videoIDInJSON.FindAllStringSubmatch(pageText, -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		id := m[1]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// CanonicalURL renders the canonical watch-page URL for a video ID. This
// is the one URL shape the rest of the system ever constructs, so a vertex
// recorded from any of the accepted input shapes still carries a single
// consistent identity.
func CanonicalURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
