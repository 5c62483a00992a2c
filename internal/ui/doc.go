// Package ui turns command lifecycle events into short console messages so that
// human-readable logging shows what git is doing while the structured logger
// keeps the full command fields.
package ui
