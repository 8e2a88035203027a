// Package logs reads the update and web log files written by partsite.
//
// Last returns the final lines of a file together with the byte offset it
// stopped at; Follow polls from an offset and hands new lines to a callback
// until its context ends. A missing file is treated as empty so `partsite
// logs` works before the first update has run.
package logs
