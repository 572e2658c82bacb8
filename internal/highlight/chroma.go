package highlight

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ChromaLine applies syntax highlighting to one line of code based on
// the file's extension. Returns the input unchanged when highlighting
// fails or no lexer matches.
func ChromaLine(line, filePath string) string {
	if line == "" || filePath == "" {
		return line
	}

	lexer := lexers.Match(filePath)
	if lexer == nil {
		lexer = lexers.Match(filepath.Base(filePath))
	}
	if lexer == nil {
		return line
	}
	lexer = chroma.Coalesce(lexer)

	// monokai reads fine on both dark and light terminals.
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// ChromaPatch highlights the code portion of every non-header patch
// line, preserving the +/-/space prefixes. It is the fallback when
// delta is not installed.
func ChromaPatch(patch, filename string) []string {
	lines := strings.Split(patch, "\n")
	out := make([]string, len(lines))
	for i, l := range lines {
		if strings.HasPrefix(l, "@@") || l == "" {
			out[i] = l
			continue
		}
		prefix, code := l[:1], l[1:]
		out[i] = prefix + ChromaLine(code, filename)
	}
	return out
}
