// SPDX-License-Identifier: MPL-2.0

// Package pipeline sequences the bootstrap stages into the install and
// launch flows.
//
// The controller drives a strict linear state machine: each state executes
// exactly one collaborator operation, a non-error result advances to the
// next state, and any error transitions unconditionally to the absorbing
// terminal-error state. The five external collaborators (interpreter
// check, environment creation, activation, package install, launch) sit
// behind small interfaces so every stage can be tested with fakes instead
// of real processes.
package pipeline
