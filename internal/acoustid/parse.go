package acoustid

import "strings"

// ParseLookup normalizes a decoded lookup response into flat track metadata
// candidates. It fails with *WebServiceError when the response status is not
// "ok" or the results field is absent; malformed nested records are silently
// discarded instead. When registry is non-nil, every merged recording's
// title/artist pair is recorded into it as a side effect.
func ParseLookup(response *LookupResponse, registry *SubmissionRegistry) ([]TrackMetadata, error) {
	if err := validateResponse(response); err != nil {
		return nil, err
	}
	recordings := extractRecordings(response.Results)
	return buildResults(mergeMatchingRecordings(recordings), registry), nil
}

func validateResponse(response *LookupResponse) error {
	if response == nil {
		return &WebServiceError{Message: "empty response"}
	}
	if response.Status != "ok" {
		return statusError(response.Status)
	}
	if response.Results == nil {
		return &WebServiceError{Message: "results not included"}
	}
	return nil
}

// extractRecordings flattens the recordings of every result entry, in
// result-entry order then within-entry order. Entries without recordings
// contribute nothing.
func extractRecordings(results []LookupResult) []Recording {
	var recordings []Recording
	for _, result := range results {
		recordings = append(recordings, result.Recordings...)
	}
	return recordings
}

// mergeKey identifies recordings that describe the same logical track. The
// artist key joins the ordered artist ids with commas; an artist without an
// id contributes an empty component, so two id-less artists collide on the
// same component and a solitary id-less artist yields an empty key.
type mergeKey struct {
	title     string
	artistKey string
}

type mergedRecording struct {
	title         string
	artists       []Artist
	releaseGroups []ReleaseGroup
}

// mergeMatchingRecordings groups recordings that share a merge key,
// accumulating release groups in encounter order and keeping the artist list
// of the first recording seen for each key. Recordings without a title or
// artist list are skipped. The output is ordered title-major then
// artist-key-minor, following first insertion at each level, which is not
// necessarily the flat input order once multiple titles interleave.
func mergeMatchingRecordings(recordings []Recording) []mergedRecording {
	titles := make([]string, 0, len(recordings))
	artistKeysByTitle := make(map[string][]string)
	buckets := make(map[mergeKey]*mergedRecording)

	for _, recording := range recordings {
		if recording.Title == nil || recording.Artists == nil {
			// No title or no artist: useless data, discard.
			continue
		}
		key := mergeKey{title: *recording.Title, artistKey: artistKey(recording.Artists)}
		if _, ok := artistKeysByTitle[key.title]; !ok {
			titles = append(titles, key.title)
		}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &mergedRecording{title: key.title, artists: recording.Artists}
			buckets[key] = bucket
			artistKeysByTitle[key.title] = append(artistKeysByTitle[key.title], key.artistKey)
		}
		bucket.releaseGroups = append(bucket.releaseGroups, recording.ReleaseGroups...)
	}

	merged := make([]mergedRecording, 0, len(buckets))
	for _, title := range titles {
		for _, artistKey := range artistKeysByTitle[title] {
			bucket := buckets[mergeKey{title: title, artistKey: artistKey}]
			bucket.releaseGroups = preferPrimaryReleases(dedupeReleaseGroups(bucket.releaseGroups))
			merged = append(merged, *bucket)
		}
	}
	return merged
}

func artistKey(artists []Artist) string {
	ids := make([]string, len(artists))
	for i, artist := range artists {
		ids[i] = artist.ID
	}
	return strings.Join(ids, ",")
}

// dedupeReleaseGroups removes structural duplicates, preserving first
// occurrence order.
func dedupeReleaseGroups(groups []ReleaseGroup) []ReleaseGroup {
	deduped := make([]ReleaseGroup, 0, len(groups))
	for _, group := range groups {
		duplicate := false
		for _, kept := range deduped {
			if kept.equal(group) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			deduped = append(deduped, group)
		}
	}
	return deduped
}

// preferPrimaryReleases drops release groups carrying secondary types
// (compilations, soundtracks, ...) as long as at least one primary release
// remains. When every group has a secondary type the list is returned
// unchanged; filtering must never empty an album list.
func preferPrimaryReleases(groups []ReleaseGroup) []ReleaseGroup {
	primary := make([]ReleaseGroup, 0, len(groups))
	for _, group := range groups {
		if group.SecondaryTypes == nil {
			primary = append(primary, group)
		}
	}
	if len(primary) == 0 {
		return groups
	}
	return primary
}

// buildResults expands each merged recording into one candidate per
// surviving release group, in preserved order.
func buildResults(recordings []mergedRecording, registry *SubmissionRegistry) []TrackMetadata {
	results := make([]TrackMetadata, 0, len(recordings))
	for _, recording := range recordings {
		artist := JoinArtistNames(recording.artists)
		if registry != nil {
			registry.Record(recording.title, artist)
		}
		for _, group := range recording.releaseGroups {
			results = append(results, buildResult(group, recording.title, artist))
		}
	}
	return results
}

func buildResult(group ReleaseGroup, title, artist string) TrackMetadata {
	meta := TrackMetadata{Title: title, Artist: artist}
	switch {
	case group.Title != nil:
		album := *group.Title
		meta.Album = &album
	case group.Name != nil:
		album := *group.Name
		meta.Album = &album
	}
	if group.Artists != nil {
		albumArtist := JoinArtistNames(group.Artists)
		meta.AlbumArtist = &albumArtist
	}
	return meta
}

// JoinArtistNames joins artist display names with "; ", preserving input
// order and repeats.
func JoinArtistNames(artists []Artist) string {
	names := make([]string, len(artists))
	for i, artist := range artists {
		names[i] = artist.Name
	}
	return strings.Join(names, "; ")
}
