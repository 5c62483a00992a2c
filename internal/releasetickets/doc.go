// Package releasetickets implements list-tickets: it finds the latest release
// branch of one project, collects the ticket identifiers referenced between
// master and that branch and prints the issue-tracker query URL for them,
// followed by a Bitbucket compare link when the project declares one.
package releasetickets
