// Package repo keeps a local checkout of the parts repository in sync with
// its origin.
//
// Sync clones the repository on first use, then fetches, checks out the
// configured branch and fast-forwards it. Progress reported by the git
// transport can be streamed to any writer; NewProgressWriter adapts it for
// terminals and plain log files.
package repo
