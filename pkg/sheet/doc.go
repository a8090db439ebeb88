// Package sheet defines the figure sheet data structures produced by
// script evaluation, and validation over them.
package sheet
