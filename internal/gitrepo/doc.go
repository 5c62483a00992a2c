// Package gitrepo interrogates and updates local git working copies.
//
// Inspector answers the questions the release classifier asks (which branches
// exist, how many commits separate two refs, which commit messages lie between
// them) and performs the fetch and fast-forward steps used to prepare a
// workspace. Every call goes through an execshell executor and failures are
// reported as ExternalToolError.
package gitrepo
