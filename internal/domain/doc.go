// Package domain models the Adriatic marine bulletin and the bora pressure
// differential served to the tourism front end.
//
// # Marine Bulletin
//
// The national weather service publishes a sea bulletin for the Adriatic
// several times a day, in Croatian, English, German and Italian. The page is
// hand-edited HTML: topics are usually introduced by <h5> headings, but the
// markup drifts between editions and the site sometimes answers with its
// generic landing page instead of the bulletin. Every edition carries the
// same four topics, which this package calls canonical blocks:
//
//	warning       gale/storm warnings, often "none"
//	synopsis      the general pressure situation
//	forecast_12h  weather for the next 12 hours
//	outlook_12h   outlook for the following 12 hours
//
// A [BulletinPayload] always carries all four [Blocks]; a topic that could
// not be found is an empty [CanonicalBlock], never missing.
//
// The issue time is printed as "DD.MM.YYYY at HH" (local phrasing varies by
// language) and is stored as UTC ISO-8601.
//
// # Languages
//
// Request codes are de, en, it, hr and fr. There is no French edition; fr is
// an alias served from the en cache entry (see [NormalizeLang]).
//
// # Bora Differential
//
// Bora is a cold katabatic wind on the eastern Adriatic coast. A practical
// leading indicator is the mean sea-level pressure difference between a
// coastal and an inland reference point: when the coast sits well below the
// interior, bora is likely. Deltas are coastal minus inland, in hPa, rounded
// to one decimal. The minimum delta over the next 36 hours is classified by
// [ClassifyLevel]:
//
//	delta ≤ -8      storm
//	delta ≤ -4      bora
//	delta <  0      watch
//	otherwise       none
package domain
