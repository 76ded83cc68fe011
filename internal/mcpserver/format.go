package mcpserver

// OutputFormatContract describes the compile tool's output layout for LLM
// consumers.
const OutputFormatContract = `# Raido Compile Output Format

The compile tool scans level-2 headings (## Heading) in the target note and
collects the list items beneath each one. Items that are exactly a wikilink
([[Name]] or [[Name|Display]]) are resolved: the file Name.md is located
anywhere under the vault root (root level preferred over subdirectories) and
its trimmed content is inlined. Resolution depth is exactly one; wikilinks
inside resolved content are left as-is.

## Normal mode

Each resolved wikilink item renders as:

` + "```" + `
---

[[Name]]

<content of Name.md>

` + "```" + `

Plain (non-wikilink) items render as their text followed by a blank line.
A leading GFM checkbox marker ([ ] / [x] / [X]) is stripped first.

## Final mode

Only resolved content, one newline after each block. No separators, no
back-references, no blank-line padding for plain items.

## Word count

The first line of the tool result is "Word Count: <N>". N counts
whitespace-delimited words in the resolved wikilink content only, after
stripping markdown syntax. Organisational text, plain items, and
"[Link not found: ...]" placeholders are never counted.
`
