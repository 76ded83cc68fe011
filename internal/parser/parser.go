// Package parser extracts frontmatter, wikilinks, and level-2 heading
// sections from Markdown content.
package parser

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	wikilinkRe = regexp.MustCompile(`^\[\[([^\]|]+)(?:\|[^\]]+)?\]\]$`)
	linkScanRe = regexp.MustCompile(`\[\[(.*?)\]\]`)
)

// Section groups the list items found beneath one level-2 heading.
type Section struct {
	Heading string
	Items   []string
}

// Sections streams markdown line by line and groups list items under their
// enclosing level-2 heading. Headings are emitted in source order, including
// headings with no items. List items that appear before the first level-2
// heading have nothing to attach to and are dropped.
func Sections(r io.Reader) ([]Section, error) {
	var (
		out  []Section
		cur  *Section
		scan = bufio.NewScanner(r)
	)
	scan.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())

		switch {
		case isLevel2Heading(line):
			if cur != nil {
				out = append(out, *cur)
			}
			title := ""
			if len(line) > 2 {
				title = strings.TrimSpace(line[3:])
			}
			cur = &Section{Heading: title}

		case cur != nil && (strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ")):
			cur.Items = append(cur.Items, strings.TrimSpace(line[2:]))
		}
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out, nil
}

// isLevel2Heading reports whether a trimmed line opens a level-2 heading:
// exactly "##" followed by end-of-line or a space. "###" is level 3 and
// does not match.
func isLevel2Heading(line string) bool {
	if !strings.HasPrefix(line, "##") {
		return false
	}
	return len(line) == 2 || line[2] == ' '
}

// StripCheckbox removes a single leading GFM checkbox marker from an item.
// Exactly the prefixes "[ ] ", "[x] ", and "[X] " are recognised; each is
// four characters including the trailing space.
func StripCheckbox(item string) string {
	for _, p := range []string{"[ ] ", "[x] ", "[X] "} {
		if strings.HasPrefix(item, p) {
			return item[len(p):]
		}
	}
	return item
}

// Wikilink reports whether text, after trimming, is exactly a wikilink of the
// form [[target]] or [[target|display]]. The display portion is discarded;
// only the target participates in resolution.
func Wikilink(text string) (target string, ok bool) {
	m := wikilinkRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Result holds the output of parsing a markdown note for indexing.
type Result struct {
	Frontmatter map[string]interface{}
	Body        string
	Links       []string
	Title       string
}

// Parse extracts frontmatter, body, wikilink targets, and a title from raw
// markdown bytes.
func Parse(data []byte) (*Result, error) {
	fm, body := splitFrontmatter(data)
	return &Result{
		Frontmatter: fm,
		Body:        body,
		Links:       ExtractLinks(body),
		Title:       deriveTitle(fm, body),
	}, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the markdown body. Missing or invalid frontmatter leaves the entire
// content as body.
func splitFrontmatter(data []byte) (map[string]interface{}, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	yamlBlock := rest[:idx]
	body := strings.TrimLeft(string(rest[idx+1+len(delim):]), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		return nil, string(data)
	}
	return fm, body
}

// ExtractLinks returns deduplicated wikilink targets found anywhere in body,
// normalising [[Target|Alias]] to Target.
func ExtractLinks(body string) []string {
	matches := linkScanRe.FindAllStringSubmatch(body, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		target := m[1]
		if i := strings.Index(target, "|"); i >= 0 {
			target = target[:i]
		}
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out
}

// deriveTitle returns the frontmatter "title" if present, otherwise the first
// H1 heading, otherwise empty string.
func deriveTitle(fm map[string]interface{}, body string) string {
	if fm != nil {
		if t, ok := fm["title"]; ok {
			if s, ok := t.(string); ok && s != "" {
				return s
			}
		}
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
