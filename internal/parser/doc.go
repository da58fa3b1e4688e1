// Package parser implements the backtracking combinator engine, the
// lexical layer, and the indentation layout rule for Ledge source.
//
// A parse session is split in two: State carries the cursor and the
// layout stacks and is snapshotted across every ordered-choice
// boundary, so failed alternatives leave no trace; Session carries
// configuration and the committed side channels (warnings, highlights,
// accessibility) that deliberately survive backtracking.
//
// The layout rule is driven by two stacks. The indent stack remembers
// the column each open construct started at; Terminator, NotEndApp and
// IndentGt compare the cursor against its top. The brace stack holds
// one frame per open block, either explicit ('{' ... '}') or implicit
// with an indentation threshold; OpenBlock and CloseBlock keep the two
// kinds properly nested.
package parser
