package parser

import (
	"strings"

	"ledge/internal/ast"
)

// DocComment parses a '|||' documentation block: one mandatory main
// line, further main lines aligned to the first marker's column, then
// zero or more parameter blocks, each introduced by a '||| @name' line
// and continued by aligned plain lines. The text of each group is
// newline-joined.
func DocComment(st *State) (ast.DocString, error) {
	if !st.lookingAt("|||") {
		return ast.DocString{}, st.fail("doc comment")
	}
	col := st.col()
	st.PushIndent()
	doc, err := docBody(st, col)
	st.PopIndent()
	return doc, err
}

func docBody(st *State, col int) (ast.DocString, error) {
	first, err := docLine(st, col, false)
	if err != nil {
		return ast.DocString{}, err
	}
	lines := []string{first}
	for {
		m := st.save()
		line, err := docLine(st, col, false)
		if err != nil {
			st.restore(m)
			break
		}
		lines = append(lines, line)
	}

	var params []ast.ParamDoc
	for {
		m := st.save()
		name, inline, err := docParamIntro(st, col)
		if err != nil {
			st.restore(m)
			break
		}
		texts := []string{inline}
		for {
			mc := st.save()
			line, err := docLine(st, col, false)
			if err != nil {
				st.restore(mc)
				break
			}
			texts = append(texts, line)
		}
		params = append(params, ast.ParamDoc{
			Name: name,
			Text: strings.TrimSpace(strings.Join(texts, "\n")),
		})
	}

	return ast.DocString{Text: strings.Join(lines, "\n"), Params: params}, nil
}

// docLine reads one '|||' line aligned at col. A line whose content
// opens with '@' introduces a parameter block and is not a plain line
// unless allowAt is set.
func docLine(st *State, col int, allowAt bool) (string, error) {
	return Lexeme(func(st *State) (string, error) {
		if st.col() != col || !st.lookingAt("|||") {
			return "", st.fail("doc comment line")
		}
		start := st.off
		st.advance(3)
		if b, ok := st.peek(); ok && b == ' ' {
			st.advance(1)
		}
		from := st.off
		skipToLineEnd(st)
		content := string(st.file.Content[from:st.off])
		if !allowAt && strings.HasPrefix(content, "@") {
			return "", st.failAt(start, "doc comment line")
		}
		return content, nil
	})(st)
}

// docParamIntro reads a '||| @name text' line aligned at col.
func docParamIntro(st *State, col int) (string, string, error) {
	content, err := docLine(st, col, true)
	if err != nil {
		return "", "", err
	}
	if !strings.HasPrefix(content, "@") {
		return "", "", st.fail("'@parameter' doc line")
	}
	rest := content[1:]
	i := 0
	for i < len(rest) && isIdentContinue(rest[i]) && rest[i] != '.' {
		i++
	}
	if i == 0 {
		return "", "", st.fail("parameter name after '@'")
	}
	return rest[:i], strings.TrimSpace(rest[i:]), nil
}
