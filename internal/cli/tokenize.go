package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	jatokenstream "github.com/masamichhhhi/go-ja-tokenstream"
	"github.com/masamichhhhi/go-ja-tokenstream/morphology"
)

// すべての文書で同じチェーンを使い回す
const field = "body"

var (
	stopPatterns []string
	romaji       bool
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [glob...]",
	Short: "Tokenize files or stdin",
	Long: `Tokenize each file matching the given globs ("**" is supported) and
print tab separated columns: term, start, end, position, feature.
Without arguments, stdin is tokenized.

Examples:
  jatokenize tokenize < doc.txt
  jatokenize tokenize --stop-pattern '助詞,.*' "docs/**/*.txt"`,
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().StringArrayVar(&stopPatterns, "stop-pattern", nil, "drop tokens whose feature fully matches this regexp (repeatable)")
	tokenizeCmd.Flags().BoolVar(&romaji, "romaji", false, "replace terms with the romaji reading")
	rootCmd.AddCommand(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	cfg.Filter.StopPatterns = append(cfg.Filter.StopPatterns, stopPatterns...)
	if romaji {
		cfg.Filter.Romaji = true
	}

	d, err := morphology.LoadDict(cfg.Tokenizer.Dictionary)
	if err != nil {
		return err
	}
	mode, err := morphology.ParseMode(cfg.Tokenizer.Mode)
	if err != nil {
		return err
	}
	tagger, err := morphology.NewKagome(d, mode)
	if err != nil {
		return fmt.Errorf("failed to create tagger: %w", err)
	}
	analyzer, err := jatokenstream.NewAnalyzer(tagger, cfg.AnalyzerOptions(logger))
	if err != nil {
		return err
	}
	defer analyzer.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		return tokenizeOne(analyzer, cmd.InOrStdin(), out)
	}

	files, err := expandGlobs(args)
	if err != nil {
		return err
	}
	logger.Debug("expanded globs", "patterns", len(args), "files", len(files))

	var bar *progressbar.ProgressBar
	if len(files) > 1 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("Tokenizing"),
		)
	}

	for _, path := range files {
		if err := tokenizeFile(analyzer, path, out); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return nil
}

func tokenizeFile(analyzer *jatokenstream.Analyzer, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(out, "# %s\n", path)
	return tokenizeOne(analyzer, f, out)
}

func tokenizeOne(analyzer *jatokenstream.Analyzer, r io.Reader, out io.Writer) error {
	ts, err := analyzer.TokenStream(field, r)
	if err != nil {
		return err
	}
	res, err := jatokenstream.Collect(ts)
	if err != nil {
		return err
	}
	return writeResult(out, res)
}

func writeResult(out io.Writer, res jatokenstream.Result) error {
	for i, t := range res.Tokens {
		if _, err := fmt.Fprintf(out, "%s\t%d\t%d\t%d\t%s\n",
			t.Term, t.StartOffset, t.EndOffset, res.Positions[i], t.Type); err != nil {
			return err
		}
	}
	return nil
}

// 重複を除き、パターンの順序を保つ
func expandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", p)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	return files, nil
}
