/*
Package session implements scene access and persistence orchestration.

It enforces the single-writer policy: every read-modify-write of a scene runs
under a per-scene lock, optionally backed by a distributed locker so several
replicas can share one store. Edit loads a scene into a scene.Store, applies a
mutation and saves the result only when the mutation succeeds.
*/
package session
