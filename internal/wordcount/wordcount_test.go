package wordcount

import "testing"

func TestCount_PlainText(t *testing.T) {
	if got := Count("Hello world"); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
}

func TestCount_Empty(t *testing.T) {
	if got := Count(""); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}
	if got := Count("   \n\t  "); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}
}

func TestCount_WikilinksRemoved(t *testing.T) {
	if got := Count("[[Alice]] says [[Bob|bobby]]"); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestCount_FenceMarkersRemovedContentKept(t *testing.T) {
	input := "```go\nfunc main\n```\n"
	if got := Count(input); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
}

func TestCount_BackticksRemoved(t *testing.T) {
	if got := Count("use `raido extract` here"); got != 4 {
		t.Errorf("count = %d, want 4", got)
	}
}

func TestCount_HTMLTagsRemoved(t *testing.T) {
	if got := Count("<div>hello</div> <br/>"); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestCount_InlineLinkKeepsText(t *testing.T) {
	if got := Count("[two words](https://example.com)"); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
}

func TestCount_HeadingMarkersStripped(t *testing.T) {
	if got := Count("# Title\n## Sub heading\nbody"); got != 4 {
		t.Errorf("count = %d, want 4", got)
	}
}

func TestCount_ListMarkersStripped(t *testing.T) {
	if got := Count("- item\n1. numbered\n+ plus\n"); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}
}

func TestCount_EmphasisRemoved(t *testing.T) {
	if got := Count("*bold* _it_ ~strike~"); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}
}

func TestCount_IdempotentOnCleanedText(t *testing.T) {
	input := "## Heading\n- [[Link]] and [a](b) *text* with `code`\n"
	once := Count(input)
	twice := Count(clean(input))
	if once != twice {
		t.Errorf("count over cleaned text = %d, want %d", twice, once)
	}
}
