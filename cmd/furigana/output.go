package main

import (
	"fmt"
	"strings"
	"time"

	"furigana/batch"
	"furigana/model"
	"furigana/parse"
	"furigana/script"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

// diffText renders the character diff from a to b. Deletions are red,
// insertions green.
func diffText(a, b string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(a, b, false))

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString(red("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			sb.WriteString(green("{+" + d.Text + "+}"))
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [text...]",
		Short: "Print a table of the segments of every document",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := records(cmd, batch.New(time.Now()), args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, r := range recs {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintln(w, inspect(r.Input))
			}
			return nil
		},
	}
}

// inspect describes every segment of in on its own line.
func inspect(in string) string {
	var sb strings.Builder
	sb.WriteString(bold(in))
	fmt.Fprintf(&sb, "  %s", gray(fmt.Sprintf("(%d kanji)", script.KanjiCount(in))))
	if _, err := parse.Strict(in); err != nil {
		sb.WriteString("\n  " + yellow(err.Error()))
	}

	seq := parse.Lenient(in)
	for i, seg := range seq.All() {
		fmt.Fprintf(&sb, "\n  %3d  %-5s  %s", i, seg.Kind, colorize(seg.Text))
		switch {
		case seg.IsKanji():
			fmt.Fprintf(&sb, "  %s  %s", gray(strings.Join(seg.Readings, "|")), gray(layout(seg)))
		case script.HasKanji(seg.Text):
			fmt.Fprintf(&sb, "  %s", yellow("unannotated kanji"))
		}
	}
	return sb.String()
}

func layout(seg model.Segment) string {
	switch {
	case seg.HasEmptyReading():
		return "no reading"
	case seg.IsDetailed():
		return "detailed"
	case seg.IsCollapsed():
		return "collapsed"
	}
	return "malformed"
}

// colorize marks kanji cyan and katakana green.
func colorize(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch script.Classify(r) {
		case script.Kanji:
			sb.WriteString(cyan(string(r)))
		case script.Katakana:
			sb.WriteString(green(string(r)))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
