// Package fingerprint generates Chromaprint acoustic fingerprints by running
// the external fpcalc command line tool.
//
// The Client wraps fpcalc's JSON output mode and returns the fingerprint
// together with the audio duration, which the AcoustID web service requires
// alongside it. Command execution sits behind a small Executor interface so
// tests can stub fpcalc without a real binary.
package fingerprint
