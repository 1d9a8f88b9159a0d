/*
Package scene implements the Node Store: the single owner of node existence and
tree shape for one scene.

Nodes live in an arena keyed by domain.NodeID; parent and child links are
identifiers resolved through that arena. Every mutating method either succeeds
and leaves the tree well formed, or fails with a sentinel error from the domain
package and leaves the store untouched.

A Store is not safe for concurrent use. Callers that share one across goroutines
serialize access themselves (see package session).
*/
package scene
