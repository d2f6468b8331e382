// Package history holds the state behind the deployment history screen: the
// filter model over dates, apps, environments and versions, the projection
// of deployment records through it, the overlay of pending version edits and
// the session that turns confirmed edits and deletions into API calls.
//
// Nothing in this package prints or prompts. A Session is owned by a single
// controller goroutine and is not safe for concurrent use.
package history
