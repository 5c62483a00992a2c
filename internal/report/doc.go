// Package report prints per-project status entries either as styled text lines
// or as a YAML document.
package report
