// Package psrules implements the PowerShell-specific rule library: the
// fold rules encoding constant folding, string and array operations,
// base64/UTF decoding, format strings, boolean algebra, variable
// propagation, and casts.
//
// Every rule here fires in Leave unless its doc comment says otherwise.
// Inability to fold is never an error: a rule that cannot determine a
// value simply does not call Handle.Set.
package psrules
