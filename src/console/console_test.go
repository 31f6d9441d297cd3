package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"build-chat/src/contracts"
)

var results = contracts.Results{
	LogMessages: []string{"Id: 2 | Branch: main | Result: failed"},
	Messages: []contracts.Message{
		{Text: "VS Code Continuous Build\nResult: failed | Branch: main\n[Build](b) | [Changes](c)"},
	},
}

func TestPrinter_Plain(t *testing.T) {
	var buf bytes.Buffer
	if err := newPrinter(&buf, false).Print(results); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	want := "Id: 2 | Branch: main | Result: failed\n" +
		"VS Code Continuous Build\nResult: failed | Branch: main\n[Build](b) | [Changes](c)\n"
	if buf.String() != want {
		t.Errorf("Print() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPrinter_Styled(t *testing.T) {
	var buf bytes.Buffer
	if err := newPrinter(&buf, true).Print(results); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	out := ansi.Strip(buf.String())
	for _, want := range []string{
		"Id: 2 | Branch: main | Result: failed",
		"VS Code Continuous Build",
		"Result: failed | Branch: main",
		"[Build](b) | [Changes](c)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("styled output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf).Print(contracts.Results{}); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestPrinter_KeepsURLs(t *testing.T) {
	var buf bytes.Buffer
	text := "VS Code\n[Build](https://dev.azure.com/b?id=2#x) | [Changes](https://github.com/o/r/compare/a...b)"
	if err := newPrinter(&buf, false).Print(contracts.Results{
		Messages: []contracts.Message{{Text: text}},
	}); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if buf.String() != text+"\n" {
		t.Errorf("Print() = %q, want %q", buf.String(), text+"\n")
	}
}
