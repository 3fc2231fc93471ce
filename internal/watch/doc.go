// Package watch re-runs the page filter whenever the manifest or the rules
// file changes. Events are debounced so that a burst of editor writes results
// in a single run.
package watch
