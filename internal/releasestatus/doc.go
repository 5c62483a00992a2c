// Package releasestatus classifies gitflow working copies.
//
// Classifier answers, per project, whether a repository exists, whether the
// develop and master branches exist and how far the latest release branch is
// ahead of master, and turns those answers into exactly one Status. Absence of
// a repository or branch is a status, never an error; only git or filesystem
// failures are returned as errors. Describe renders a Status for display, and
// the list command prints one entry per configured project.
package releasestatus
