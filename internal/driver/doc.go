// Package driver runs the formatter over file trees: collecting source
// files, formatting them in parallel, caching results on disk, and checking
// line length limits. The CLI layers on top of it.
package driver
