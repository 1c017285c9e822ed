package uncurl

import "testing"

func TestConvertSimpleBlock(t *testing.T) {
	got := Convert("if x:\n{\n    y()\n}\n")
	want := "if x:\n    y()\n"
	if got != want {
		t.Fatalf("Convert = %q, want %q", got, want)
	}
}

func TestConvertInlineOpenAndCloseComment(t *testing.T) {
	got := Convert("if x: {\n    y()\n} # done\n")
	want := "if x:\n    y()\n# done\n"
	if got != want {
		t.Fatalf("Convert = %q, want %q", got, want)
	}
}

func TestConvertOpenBraceWithTrailingComment(t *testing.T) {
	got := Convert("if x: { # setup\n    y()\n}\n")
	want := "if x:  # setup\n    y()\n"
	if got != want {
		t.Fatalf("Convert = %q, want %q", got, want)
	}
}

func TestConvertLoneOpenBraceWithComment(t *testing.T) {
	got := Convert("if x:\n{ # begin\n    y()\n}\n")
	want := "if x:\n# begin\n    y()\n"
	if got != want {
		t.Fatalf("Convert = %q, want %q", got, want)
	}
}

func TestConvertNestedBlocks(t *testing.T) {
	in := "if a: {\n    if b: {\n        f()\n    }\n}\n"
	want := "if a:\n    if b:\n        f()\n"
	if got := Convert(in); got != want {
		t.Fatalf("Convert = %q, want %q", got, want)
	}
}

func TestConvertCloseCommentUsesNewDepth(t *testing.T) {
	in := "if a: {\n    if b: {\n        f()\n    } # inner\n}\n"
	want := "if a:\n    if b:\n        f()\n    # inner\n"
	if got := Convert(in); got != want {
		t.Fatalf("Convert = %q, want %q", got, want)
	}
}

func TestConvertStringBracesImmune(t *testing.T) {
	in := "s = \"a { b }\"\n"
	if got := Convert(in); got != in {
		t.Fatalf("Convert = %q, want input unchanged %q", got, in)
	}
}

func TestConvertFStringBracesImmune(t *testing.T) {
	in := "x = f\"{a}{b}\"\n"
	if got := Convert(in); got != in {
		t.Fatalf("Convert = %q, want input unchanged %q", got, in)
	}
}

func TestConvertCommentBraceImmune(t *testing.T) {
	got := Convert("if x: {\n    y()  # keep }\n}\n")
	want := "if x:\n    y()  # keep }\n"
	if got != want {
		t.Fatalf("Convert = %q, want %q", got, want)
	}
}

func TestConvertDictLiteralUntouched(t *testing.T) {
	in := "d = {'a': 1}\n"
	if got := Convert(in); got != in {
		t.Fatalf("Convert = %q, want input unchanged %q", got, in)
	}
}

func TestConvertTripleQuotedInteriorImmune(t *testing.T) {
	in := "s = \"\"\"\n{\n}\n\"\"\"\nif x: {\n    y()\n}\n"
	want := "s = \"\"\"\n{\n}\n\"\"\"\nif x:\n    y()\n"
	if got := Convert(in); got != want {
		t.Fatalf("Convert = %q, want %q", got, want)
	}
}

func TestConvertUnterminatedStringBestEffort(t *testing.T) {
	in := "x = \"abc\nif y: {\n    z()\n}\n"
	want := "x = \"abc\nif y:\n    z()\n"
	if got := Convert(in); got != want {
		t.Fatalf("Convert = %q, want %q", got, want)
	}
}

func TestConvertNoBracesPassesThrough(t *testing.T) {
	in := "x = 1\n# comment\n\nprint(x)\n"
	got := Convert(in)
	if got != in {
		t.Fatalf("Convert = %q, want input unchanged %q", got, in)
	}
	if again := Convert(got); again != got {
		t.Fatalf("Convert not idempotent: %q -> %q", got, again)
	}
}

func TestConvertDepthFloorsAtZero(t *testing.T) {
	got := Convert("}\n}\nx = 1\n")
	want := "x = 1\n"
	if got != want {
		t.Fatalf("Convert = %q, want %q", got, want)
	}
}

func TestConvertCollapsesBlankRuns(t *testing.T) {
	got := Convert("x = 1\n\n\n\ny = 2\n")
	want := "x = 1\n\ny = 2\n"
	if got != want {
		t.Fatalf("Convert = %q, want %q", got, want)
	}
}

func TestConvertTrailingNewlineFidelity(t *testing.T) {
	cases := map[string]string{
		"if x: {\n    y()\n}":   "if x:\n    y()",
		"if x: {\n    y()\n}\n": "if x:\n    y()\n",
	}
	for in, want := range cases {
		if got := Convert(in); got != want {
			t.Fatalf("Convert(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConvertTrivialInput(t *testing.T) {
	for _, in := range []string{"", "   \n\t\n", "\n"} {
		if got := Convert(in); got != in {
			t.Fatalf("Convert(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestConvertWithCustomIndent(t *testing.T) {
	got := ConvertWith("if x: {\n    y()\n}\n", Options{Indent: "  "})
	want := "if x:\n  y()\n"
	if got != want {
		t.Fatalf("ConvertWith = %q, want %q", got, want)
	}
}

func TestCollapseBlankRuns(t *testing.T) {
	got := collapseBlankRuns([]string{"", "", "a", "", "", "", "b", ""})
	want := []string{"", "a", "", "b", ""}
	if len(got) != len(want) {
		t.Fatalf("collapseBlankRuns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("collapseBlankRuns = %v, want %v", got, want)
		}
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a\nb\n", []string{"a", "b"}},
		{"a\nb", []string{"a", "b"}},
		{"a\n\n", []string{"a", ""}},
		{"a\r\nb\r\n", []string{"a", "b"}},
	}
	for _, c := range cases {
		got := splitLines(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("splitLines(%q) = %v, want %v", c.in, got, c.want)
		}
		for i := range c.want {
			if got[i] != c.want[i] {
				t.Fatalf("splitLines(%q) = %v, want %v", c.in, got, c.want)
			}
		}
	}
}
