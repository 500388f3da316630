// Package labeler contains the reconciliation loop that keeps node
// labels and exported metrics aligned with the locally observed BCM
// facts.
//
// The loop is level-based. Every cycle re-reads the full fact state and
// re-derives the full label set from it; nothing is computed from the
// previous cycle, so the system self-heals from any missed or failed
// cycle on the next pass. Cycle failures are logged and counted, then
// the loop backs off briefly and resumes its schedule.
package labeler
