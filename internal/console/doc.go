// Package console reads equation coefficients and menu selections from a
// line oriented input stream.
//
// Prompts are written only when the input is a terminal, so piped input
// produces nothing but result lines. Error messages are always written.
//
// # Input rules
//
// Each coefficient is one line holding a single decimal number. Blank lines
// are skipped. A line that does not parse, or that holds NaN or an infinity,
// prints the localized "invalid input" message and the same coefficient is
// requested again. End of input aborts with [ErrEndOfInput].
package console
