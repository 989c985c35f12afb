/*
Package semtok turns a parsed .zc file into the LSP semantic token stream.

Pipeline:
---------

	*ast.File
	    |
	    v
	+--------+  emit   +--------+  sort+dedup  +---------+  deltas  +----------+
	| walker | ------> | Buffer | -----------> | ordered | -------> | {"data"} |
	+--------+         +--------+              +---------+          +----------+

Each token is five uint32s in the response:

	deltaLine, deltaStartChar, length, tokenType, tokenModifiers

deltaStartChar is relative to the previous token only when both sit on the
same line. The legend order in [DefaultLegend] is part of the wire format and
is append-only.

A document the resolver does not know, or one without a syntax tree, yields
{"data":[]} without running the pipeline.
*/
package semtok
