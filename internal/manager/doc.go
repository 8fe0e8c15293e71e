// Package manager coordinates generations: it resolves the model, builds the
// sd-cli invocation, serializes execution through the accelerator Gate and
// collects (then removes) the produced images. It is structured into small
// files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: ManagerConfig, the Executor seam and package defaults.
//   - admission.go: the single-slot Gate.
//   - generate.go: Run (one-shot, keeps the file) and Generate (HTTP, returns bytes).
//   - extract.go: output collection and cleanup, including batch siblings.
//   - errors.go: outcome labels derived from sderr kinds.
//   - events.go / eventpub_memory.go: lifecycle events.
//   - status_report.go, sanity.go: /status and readiness reporting.
//   - metrics.go: Prometheus collectors.
//
// The registry is read-only and the Gate is the only mutable shared resource
// on the generation path.
package manager
