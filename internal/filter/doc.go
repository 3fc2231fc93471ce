// Package filter prunes a page manifest with whitelist (include) and
// blacklist (exclude) rule sets.
//
// A [Rule] names a section ("app" for the main package, a sub-package root
// otherwise) and optionally a list of page prefixes. A prefix matches a page
// when the page equals it or continues it with a "/" segment boundary, so
// "pages/index" matches "pages/index/detail" but not "pages/index2". A rule
// without pages addresses the whole section.
//
// [Apply] runs the whitelist pass, then the blacklist pass, over the main
// package and every sub-package, drops sub-packages left without pages and
// reports what changed. Filtering never fails: configuration problems that do
// not prevent filtering are surfaced as [Diagnostic] values.
package filter
