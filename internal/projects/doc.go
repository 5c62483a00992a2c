// Package projects holds the configured project catalog: the ordered list of
// gitflow working copies r3000 inspects, validated once at startup and passed
// explicitly to every command.
package projects
