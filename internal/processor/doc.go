// Package processor contains the stage orchestration for abbrevkit. It
// resolves paths, guards the working directory with a lock, runs the
// filter, features and chunk stages over their files, and reports each
// run through logs, summary tables and optional metrics.
package processor
