// Package markdown normalizes documentation comments coming out of the
// compiler so they render cleanly as markdown in the editor.
package markdown

import (
	"regexp"
	"strings"
)

var (
	starPrefixRe  = regexp.MustCompile(`^\s*\*\s?`)
	javadocTagRe  = regexp.MustCompile("^@(param|return|returns|throws|see|since|deprecated)\\b\\s*")
	trailingWsRe  = regexp.MustCompile(`[ \t]+$`)
	inlineCodeTag = "`"
)

// Normalize cleans a raw doc comment into display markdown: leading
// comment stars and common indentation are stripped, javadoc-style tags
// are rewritten as emphasized labels, trailing whitespace is removed.
func Normalize(doc string) string {
	if doc == "" {
		return ""
	}

	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		lines[i] = starPrefixRe.ReplaceAllString(line, "")
	}
	lines = trimCommonIndent(lines)

	for i, line := range lines {
		line = trailingWsRe.ReplaceAllString(line, "")
		if m := javadocTagRe.FindStringSubmatch(line); m != nil {
			rest := strings.TrimSpace(line[len(m[0]):])
			line = formatTag(m[1], rest)
		}
		lines[i] = line
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func formatTag(tag, rest string) string {
	switch tag {
	case "param", "throws":
		// first word is the parameter or exception name
		name, desc, _ := strings.Cut(rest, " ")
		if name == "" {
			return "*@" + tag + "*"
		}
		out := "*@" + tag + "* " + inlineCodeTag + name + inlineCodeTag
		if desc = strings.TrimSpace(desc); desc != "" {
			out += " " + desc
		}
		return out
	default:
		if rest == "" {
			return "*@" + tag + "*"
		}
		return "*@" + tag + "* " + rest
	}
}

func trimCommonIndent(lines []string) []string {
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent == -1 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return lines
	}
	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return lines
}
