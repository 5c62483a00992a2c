// Package workspace brings the local gitflow branches of every configured
// project up to date: it fetches the remote once per project and then
// fast-forwards develop and master from their remote-tracking branches.
package workspace
