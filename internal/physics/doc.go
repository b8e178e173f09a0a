// Package physics provides the deterministic frequency-response models that
// the uncertainty engines evaluate repeatedly.
//
// Each model implements [ResponseModel], mapping a parameter vector and a
// frequency grid to a response curve:
//
//   - [RodMesh]: transfer-function magnitude of a two-DOF rod mesh with an
//     uncertain Young's modulus
//   - [Oscillator]: steady-state amplitude of a damped linear oscillator
//     under swept sinusoidal forcing
//
// Models are pure and safe for concurrent use; they hold nominal constants
// only and never mutate state during evaluation.
package physics
