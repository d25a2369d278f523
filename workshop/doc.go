// Package workshop loads the demo's problem definitions from YAML.
//
// A problem bundles everything one run of the demo needs: the prompt, how
// many samples to draw, the sampling temperature, which tools to advertise,
// and optionally the expected answer so the CLI can grade the vote.
package workshop
