// Package roff composes ROFF documents such as manual pages.
//
// ROFF is the line-oriented typesetting language read by troff, nroff,
// groff and man. A [Roff] collects control lines and text, each tagged with
// an escaping [Class], and [Roff.Render] writes them out with the escaping
// rules applied:
//
//   - a backslash becomes \\ and a dash becomes \-
//   - a line starting with '.', '\'' or a space gets a \& prefix
//   - control line arguments turn spaces and newlines into "\ "
//
// With [Handle] the output starts with a preamble defining \*(Aq and
// apostrophes in control line arguments use it. [DontHandle] leaves them
// alone, which keeps golden output readable.
//
//	doc := roff.New().
//		Control("TH", "FOO", "1").
//		Control("SH", "NAME").
//		Text(roff.Span{Font: roff.Current, Text: "foo - do a foo thing"}).
//		Render(roff.DontHandle)
//	// .TH FOO 1
//	// .SH NAME
//	// foo \- do a foo thing
package roff
