// Package filter cleans raw abbreviation candidates, splits them into
// tokens and sorts each token into the matching or non-matching set
// according to a structural Cyrillic letter pattern.
package filter
