// Package source names where a searchdown configuration or candidate
// document lives (a file, an fs.FS entry or an HTTP URL) and defines the
// loader contract that reads it.
package source
