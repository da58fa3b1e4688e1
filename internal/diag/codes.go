package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnterminatedString       Code = 1001
	LexUnterminatedChar         Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntax / layout
	SynInfo              Code = 2000
	SynExpected          Code = 2001
	SynUnexpectedToken   Code = 2002
	SynMismatchedBlock   Code = 2003
	SynEmptyBlock        Code = 2004
	SynBadDocComment     Code = 2005
	SynBadQualifiedName  Code = 2006
	SynDeferredWarning   Code = 2100
	SynShadowedAlias     Code = 2101
	SynReservedExtension Code = 2102

	// Accessibility
	AccInfo               Code = 3000
	AccDeprecatedPublic   Code = 3001
	AccDeprecatedAbstract Code = 3002

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedChar:         "Unterminated character literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	SynInfo:                     "Syntax information",
	SynExpected:                 "Parse failure",
	SynUnexpectedToken:          "Unexpected token",
	SynMismatchedBlock:          "Mismatched block delimiters",
	SynEmptyBlock:               "Block must contain at least one item",
	SynBadDocComment:            "Malformed documentation comment",
	SynBadQualifiedName:         "Malformed qualified name",
	SynDeferredWarning:          "Parse warning",
	SynShadowedAlias:            "Namespace alias shadows an earlier alias",
	SynReservedExtension:        "Syntax rule reserves an identifier",
	AccInfo:                     "Accessibility information",
	AccDeprecatedPublic:         "Deprecated accessibility modifier 'public'",
	AccDeprecatedAbstract:       "Deprecated accessibility modifier 'abstract'",
	IOLoadFileError:             "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("ACC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
