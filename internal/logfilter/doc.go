// Package logfilter reduces a WSJT-X ALL.TXT style log to the lines that
// mention one station.
//
// # Overview
//
// The input is read once, line by line. A line survives when it contains the
// callsign. Lines that also contain the announcement marker ("CQ " followed
// by the callsign) are held back: each one replaces the previously held line,
// and the held line is written just before the next surviving non-CQ line or
// at end of input. A run of repeated calls therefore shows up once, as its
// last member, in its original position.
//
//	CQ HB9EVT JN47      <- superseded
//	CQ HB9EVT JN47      <- kept
//	HB9EVT DJ2MS -12    <- kept
//	HB9EVT DJ2MS RR73   <- kept
//
// # Line Handling
//
// Lines are kept verbatim, including the line terminator, so concatenating
// the returned slice reproduces the output file byte for byte. A final line
// without a terminator is still a complete line.
//
// # Decoding
//
// FilterFile decodes the input through golang.org/x/text. The default is
// UTF-8; any WHATWG label accepted by htmlindex (for example "windows-1252")
// may be configured. Invalid byte sequences become U+FFFD instead of failing
// the run.
//
// # Error Handling
//
// A missing or unreadable input file is returned to the caller, wrapped.
// The output file is created (or truncated) only after the input has been
// opened successfully.
package logfilter
