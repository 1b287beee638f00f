// Package submissions records the snapshots of successfully submitted
// example forms. Memory keeps them in process; Redis keeps them in capped
// lists so they survive restarts and are shared between instances.
package submissions
