package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowbreak/pkg/breaking"
	"github.com/matzehuels/flowbreak/pkg/pipeline"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"lines", "pages", "graph", "explore", "serve", "cache"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestParsePageSpec(t *testing.T) {
	tests := []struct {
		in      string
		want    breaking.PageSpec
		wantErr bool
	}{
		{in: "40x60", want: breaking.PageSpec{Height: 40, Width: 60, Columns: 1}},
		{in: "40x60x2", want: breaking.PageSpec{Height: 40, Width: 60, Columns: 2}},
		{in: "40x60*3", want: breaking.PageSpec{Height: 40, Width: 60, Columns: 1, Count: 3}},
		{in: "40x60x2*3", want: breaking.PageSpec{Height: 40, Width: 60, Columns: 2, Count: 3}},
		{in: "40", wantErr: true},
		{in: "40x60x2x1", wantErr: true},
		{in: "0x60", wantErr: true},
		{in: "axb", wantErr: true},
		{in: "40x60*0", wantErr: true},
		{in: "40x60*", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePageSpec(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePageSpec(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parsePageSpec(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateOutput(t *testing.T) {
	for _, ok := range []string{"text", "table", "json"} {
		if err := validateOutput(ok); err != nil {
			t.Errorf("validateOutput(%q) = %v", ok, err)
		}
	}
	if err := validateOutput("yaml"); err == nil {
		t.Error("validateOutput(yaml) should fail")
	}
}

func TestLineFlagsKeepProfileValues(t *testing.T) {
	var f lineFlags
	cmd := &cobra.Command{Use: "lines"}
	f.register(cmd)
	if err := cmd.ParseFlags([]string{"--align", "center"}); err != nil {
		t.Fatal(err)
	}

	opts := pipeline.LineOptions{Width: 72, Alignment: "justify", HyphenPenalty: 50}
	f.apply(cmd, &opts)
	if opts.Width != 72 {
		t.Errorf("Width = %d, profile value should be kept", opts.Width)
	}
	if opts.Alignment != "center" {
		t.Errorf("Alignment = %q, flag should win", opts.Alignment)
	}
	if opts.HyphenPenalty != 50 {
		t.Errorf("HyphenPenalty = %d, profile value should be kept", opts.HyphenPenalty)
	}
}

func TestPageFlagsReplaceProfilePages(t *testing.T) {
	var f pageFlags
	cmd := &cobra.Command{Use: "pages"}
	f.register(cmd)
	if err := cmd.ParseFlags([]string{"-p", "10x20", "-p", "30x40x2"}); err != nil {
		t.Fatal(err)
	}

	opts := pipeline.PageOptions{Pages: []breaking.PageSpec{{Height: 99, Width: 99}}, Balance: 2}
	if err := f.apply(cmd, &opts); err != nil {
		t.Fatal(err)
	}
	want := []breaking.PageSpec{{Height: 10, Width: 20, Columns: 1}, {Height: 30, Width: 40, Columns: 2}}
	if len(opts.Pages) != 2 || opts.Pages[0] != want[0] || opts.Pages[1] != want[1] {
		t.Errorf("Pages = %+v, want %+v", opts.Pages, want)
	}
	if opts.Balance != 2 {
		t.Errorf("Balance = %d, profile value should be kept", opts.Balance)
	}
}

func TestLinesCommandText(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader("aaa bbb ccc"))
	root.SetArgs([]string{"--no-cache", "lines", "-w", "7"})

	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "aaa bbb\nccc    \n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLinesCommandJSON(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader("aaa bbb ccc"))
	root.SetArgs([]string{"--no-cache", "lines", "-w", "7", "-o", "json"})

	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"text": [`) || !strings.Contains(out.String(), `"aaa bbb"`) {
		t.Errorf("unexpected JSON output:\n%s", out.String())
	}
}

func TestLinesCommandRejectsOutput(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader("aaa"))
	root.SetArgs([]string{"--no-cache", "lines", "-o", "yaml"})

	if err := root.Execute(); err == nil {
		t.Error("unknown output format should fail")
	}
}
