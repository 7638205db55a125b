package acoustid

import "slices"

// LookupResponse models the decoded AcoustID lookup payload. A nil Results
// slice means the field was absent from the response, which is distinct from
// an empty result list.
type LookupResponse struct {
	Status  string         `json:"status"`
	Results []LookupResult `json:"results"`
}

// LookupResult is a single entry of the lookup response. Entries without
// recordings carry no usable metadata.
type LookupResult struct {
	ID         string      `json:"id"`
	Score      float64     `json:"score"`
	Recordings []Recording `json:"recordings"`
}

// Recording is one canonical performance of a track, independent of which
// album it appears on. Title and Artists are optional in the wire format; a
// recording lacking either is discarded wherever it is consumed.
type Recording struct {
	ID            string         `json:"id"`
	Title         *string        `json:"title"`
	Artists       []Artist       `json:"artists"`
	ReleaseGroups []ReleaseGroup `json:"releasegroups"`
}

// Artist is a credited artist. An absent id decodes to the empty string.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ReleaseGroup is an album or release under which a recording was published.
// A non-nil SecondaryTypes marks compilations, soundtracks, and similar
// non-primary releases; only the field's presence is ever inspected.
type ReleaseGroup struct {
	ID             string   `json:"id"`
	Type           string   `json:"type,omitempty"`
	Title          *string  `json:"title,omitempty"`
	Name           *string  `json:"name,omitempty"`
	Artists        []Artist `json:"artists,omitempty"`
	SecondaryTypes []string `json:"secondarytypes,omitempty"`
}

// equal reports full structural equality, including the presence or absence
// of optional fields. This is the identity used for release group
// deduplication.
func (g ReleaseGroup) equal(other ReleaseGroup) bool {
	return g.ID == other.ID &&
		g.Type == other.Type &&
		equalOptionalString(g.Title, other.Title) &&
		equalOptionalString(g.Name, other.Name) &&
		(g.Artists == nil) == (other.Artists == nil) &&
		slices.Equal(g.Artists, other.Artists) &&
		(g.SecondaryTypes == nil) == (other.SecondaryTypes == nil) &&
		slices.Equal(g.SecondaryTypes, other.SecondaryTypes)
}

func equalOptionalString(a, b *string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

// TrackMetadata is one identification candidate. Album and AlbumArtist are
// nil when the source release group carried no corresponding field.
type TrackMetadata struct {
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Album       *string `json:"album"`
	AlbumArtist *string `json:"albumartist"`
}
