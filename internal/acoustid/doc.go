// Package acoustid provides the AcoustID web service client and the
// normalization pipeline that turns its noisy lookup responses into a flat,
// deduplicated list of track metadata candidates.
//
// A lookup response nests recordings inside result entries; the same logical
// track commonly appears several times with overlapping release groups. The
// pipeline validates the response, flattens the recordings, merges recordings
// that share a title and artist-id sequence, deduplicates and filters each
// merged recording's release groups (preferring non-compilation albums), and
// expands what remains into one candidate per album. All plausible candidates
// are returned; ranking is left to the caller.
//
// The package also owns the process-lifetime SubmissionRegistry used to
// suppress duplicate fingerprint submissions.
package acoustid
