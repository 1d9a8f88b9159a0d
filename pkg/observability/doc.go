/*
Package observability turns editor lifecycle events into logs and metrics.

Metrics exposes Prometheus collectors fed by domain.LifecycleHooks; LogHooks
writes the same events to a slog.Logger. Both return hooks that can be merged
and handed to the editor, the scene store or the code generator.
*/
package observability
