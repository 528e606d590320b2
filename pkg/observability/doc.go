/*
Package observability provides Prometheus instrumentation for the solver.

Metrics are fed exclusively through domain.LifecycleHooks, so the exploration
core never imports the Prometheus client.
*/
package observability
