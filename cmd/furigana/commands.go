package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"furigana/compare"
	"furigana/model"
	"furigana/normalize"
	"furigana/parse"

	"github.com/spf13/cobra"
)

func newParseCommand(a *app) *cobra.Command {
	var lenient bool
	cmd := &cobra.Command{
		Use:   "parse [text...]",
		Short: "Print the segments of every document as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(_ context.Context, in string) (string, error) {
				var seq model.Sequence
				if lenient {
					seq = parse.Lenient(in)
				} else {
					var err error
					if seq, err = parse.Strict(in); err != nil {
						return "", err
					}
				}
				b, err := json.Marshal(struct {
					Segments []model.Segment `json:"segments"`
					Reading  model.Reading   `json:"reading"`
				}{seq.Segments(), seq.ToReading()})
				return string(b), err
			})
		},
	}
	cmd.Flags().BoolVar(&lenient, "lenient", false, "Degrade malformed blocks instead of failing")
	return cmd
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [text...]",
		Short: "Validate every document in strict mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(_ context.Context, in string) (string, error) {
				if _, err := parse.Strict(in); err != nil {
					return "", err
				}
				return green("ok"), nil
			})
		},
	}
}

func newProjectionCommand(a *app, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [text...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, func(_ context.Context, in string) (string, error) {
				switch name {
				case "kana":
					return a.proj.Kana(in), nil
				case "kanji":
					return a.proj.Kanji(in), nil
				}
				b, err := json.Marshal(a.proj.Both(in))
				return string(b), err
			})
		},
	}
}

// steps are the normalize transformations selectable with --step.
var steps = map[string]func(*normalize.Formatter, string) string{
	"merge": (*normalize.Formatter).Merge,
	"empty": (*normalize.Formatter).RemoveEmptyKanji,
	"fix":   (*normalize.Formatter).FixBlocks,
	"split": (*normalize.Formatter).Split,
	"all":   (*normalize.Formatter).All,
}

func newNormalizeCommand(a *app) *cobra.Command {
	var step string
	cmd := &cobra.Command{
		Use:   "normalize [text...]",
		Short: "Rewrite the block layout without changing the readings",
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := steps[step]
			if !ok {
				return fmt.Errorf("unknown step %q, want one of merge, empty, fix, split or all", step)
			}
			var opts []normalize.Option
			if a.cfg.Lossy {
				opts = append(opts, normalize.Lossy())
			}
			f := normalize.New(opts...)
			return a.run(cmd, args, func(_ context.Context, in string) (string, error) {
				return fn(f, in), nil
			})
		},
	}
	cmd.Flags().StringVar(&step, "step", "merge", "Transformation: merge, empty, fix, split or all")
	cmd.Flags().Bool("lossy", false, "Merge collapsed blocks too, joining their readings")
	return cmd
}

var errDiffer = errors.New("documents differ")

func newCompareCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Tell whether two documents are equal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []compare.Option
			if a.cfg.FoldKana {
				opts = append(opts, compare.FoldKana())
			}
			c := compare.New(a.cfg.LiteralMatch, opts...)
			x, y := parse.Lenient(args[0]), parse.Lenient(args[1])

			w := cmd.OutOrStdout()
			if c.Sequences(x, y) {
				fmt.Fprintln(w, green("equal"))
				return nil
			}
			fmt.Fprintln(w, red("different"))
			writeLines(w,
				gray("kana:  ")+diffText(x.KanaReading(), y.KanaReading()),
				gray("kanji: ")+diffText(x.KanjiReading(), y.KanjiReading()),
			)
			if c.LiteralMatch() {
				fmt.Fprintln(w, gray("split: ")+diffText(splitText(x), splitText(y)))
			}
			return errDiffer
		},
	}
	cmd.Flags().Bool("literal", false, "Compare literal by literal instead of by reading")
	cmd.Flags().Bool("fold-kana", false, "Treat katakana and hiragana readings as equal")
	return cmd
}

// splitText encodes seq with one block per literal, which is the form
// literal comparison works on.
func splitText(seq model.Sequence) string {
	var b strings.Builder
	for seg := range seq.Flattened() {
		seg.EncodeTo(&b)
	}
	return b.String()
}
