package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oinoirenigonasoindoisanfoidsn/uncurl"
)

// Well-known locations used when no path argument is given, matching the
// tool's original single-file workflow.
const (
	defaultInputFile  = "curlied.py"
	defaultOutputFile = "whitespaced.py"
)

var writeInPlace bool
var toFile bool
var fileName string
var indentWidth int
var includeGitIgnore bool
var includeGit bool
var profileName string
var printFlag bool
var copyFlag bool
var sshCopyFlag bool
var setOutputMode string
var showTokenCount bool
var tokenCountModel string

var rootCmd = &cobra.Command{
	Use:   "uncurl [path]",
	Short: "Uncurl rewrites curly-brace Python into indentation-based Python",
	Long: `Uncurl converts Python written with curly-brace block delimiters into
canonical indentation-based Python. Scoping braces become indentation-level
changes; string literals and comments pass through untouched.

With no argument it reads ./curlied.py and writes ./whitespaced.py. Given a
file it prints the conversion (or writes it with --write or --to-file); given
a directory it converts every matching file in place (requires --write).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if setOutputMode != "" {
			if err := writeHomeDefaultOutputMode(setOutputMode); err != nil {
				return err
			}
			fmt.Printf("Default output mode set to: %s\n", setOutputMode)
			return nil
		}

		if len(args) == 0 {
			return convertWellKnown(convertOptions(cmd, loadRules(".")))
		}

		path := args[0]
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return fmt.Errorf("input not found: %s", path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if info.IsDir() {
			return convertTree(path, cmd)
		}
		return convertFile(path, info, convertOptions(cmd, loadRules(filepath.Dir(path))))
	},
}

// convertWellKnown runs the default workflow: curlied.py in, whitespaced.py
// out. A missing input file is reported distinctly from any later failure.
func convertWellKnown(opts uncurl.Options) error {
	data, err := os.ReadFile(defaultInputFile)
	if os.IsNotExist(err) {
		return fmt.Errorf("input not found: %s (pass a file or directory to convert instead)", defaultInputFile)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", defaultInputFile, err)
	}

	converted := uncurl.ConvertWith(string(data), opts)
	if err := os.WriteFile(defaultOutputFile, []byte(converted), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", defaultOutputFile, err)
	}
	fmt.Printf("Converted %s -> %s\n", defaultInputFile, defaultOutputFile)
	return reportTokenCount(string(data), converted)
}

// convertFile converts a single file and routes the result: in place, to a
// named file, or through the selected output mode.
func convertFile(path string, info os.FileInfo, opts uncurl.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	converted := uncurl.ConvertWith(string(data), opts)
	if err := reportTokenCount(string(data), converted); err != nil {
		return err
	}

	switch {
	case writeInPlace:
		if err := os.WriteFile(path, []byte(converted), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Converted %s in place\n", path)
		return nil
	case toFile:
		if err := os.WriteFile(fileName, []byte(converted), 0644); err != nil {
			return fmt.Errorf("failed to write to file: %w", err)
		}
		fmt.Printf("Output written to: %s\n", fileName)
		return nil
	}

	defaultMode, err := readHomeDefaultOutputMode()
	if err != nil {
		return err
	}
	mode, err := resolveOutputMode(defaultMode, printFlag, copyFlag, sshCopyFlag)
	if err != nil {
		return err
	}
	switch mode {
	case outputModeCopy:
		if err := copyToClipboard(converted); err != nil {
			return err
		}
		fmt.Println("Converted output copied to clipboard")
	case outputModeSSHCopy:
		if err := copyToOSC52(converted); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Converted output sent to terminal clipboard (OSC 52)")
	default:
		fmt.Print(converted)
	}
	return nil
}

// convertTree walks a directory and converts every file the filter accepts,
// rewriting each in place. Files the conversion leaves unchanged are not
// rewritten.
func convertTree(dir string, cmd *cobra.Command) error {
	if !writeInPlace {
		return fmt.Errorf("directory conversion rewrites files; pass --write to confirm")
	}

	rules := loadRules(dir)
	opts := convertOptions(cmd, rules)
	include := []string{"**/*.py"}
	var exclude []string
	if rules != nil {
		if len(rules.include) > 0 {
			include = rules.include
		}
		exclude = rules.exclude
	}

	filter, err := NewFilter(dir, includeGitIgnore, includeGit, include, exclude)
	if err != nil {
		return fmt.Errorf("failed to create filter: %w", err)
	}

	examined, converted := 0, 0
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if !filter.ShouldInclude(info, path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		examined++
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		out := uncurl.ConvertWith(string(data), opts)
		if out == string(data) {
			return nil
		}
		if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		converted++
		fmt.Printf("Converted %s\n", path)
		return nil
	})
	if walkErr != nil {
		return walkErr
	}

	fmt.Printf("Converted %d of %d files\n", converted, examined)
	return nil
}

// convertOptions builds the core Options from the --indent flag, falling
// back to the .uncurl file's indent when the flag was not set explicitly.
func convertOptions(cmd *cobra.Command, rules *uncurlRuleSet) uncurl.Options {
	width := indentWidth
	if !cmd.Flags().Changed("indent") && rules != nil && rules.indent > 0 {
		width = rules.indent
	}
	if width <= 0 {
		width = 4
	}
	return uncurl.Options{Indent: strings.Repeat(" ", width)}
}

// loadRules reads the .uncurl file in dir, if any. Parse failures are
// reported as warnings rather than aborting the conversion.
func loadRules(dir string) *uncurlRuleSet {
	rules, err := readUncurlFile(filepath.Join(dir, uncurlFileName), profileName)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		return nil
	}
	return rules
}

func reportTokenCount(original, converted string) error {
	if !showTokenCount {
		return nil
	}
	report, err := buildTokenReport(original, converted, tokenCountModel)
	if err != nil {
		return err
	}
	fmt.Print(report)
	return nil
}

func init() {
	rootCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "Rewrite the input file(s) in place")
	rootCmd.Flags().BoolVarP(&toFile, "to-file", "f", false, "Write output to file instead of stdout")
	rootCmd.Flags().StringVarP(&fileName, "file-name", "n", defaultOutputFile, "Output file name (only used with --to-file)")
	rootCmd.Flags().IntVar(&indentWidth, "indent", 4, "Indent unit width in spaces")
	rootCmd.Flags().BoolVarP(&includeGitIgnore, "include-gitignore", "i", false, "Convert files that would normally be ignored by .gitignore")
	rootCmd.Flags().BoolVarP(&includeGit, "include-git", "g", false, "Descend into the .git directory")
	rootCmd.Flags().StringVarP(&profileName, "profile", "p", "", "Profile from the .uncurl file to apply")
	rootCmd.Flags().BoolVar(&printFlag, "print", false, "Print converted output to stdout")
	rootCmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "Copy converted output to the clipboard")
	rootCmd.Flags().BoolVar(&sshCopyFlag, "ssh-copy", false, "Copy converted output via OSC 52 (works over SSH)")
	rootCmd.Flags().StringVar(&setOutputMode, "set-output", "", "Persist the default output mode (print, copy, or ssh-copy) and exit")
	rootCmd.Flags().BoolVar(&showTokenCount, "tcount", false, "Report line and token counts for the conversion")
	rootCmd.Flags().StringVar(&tokenCountModel, "tcount-model", "gpt-4o", "Model used for token counting (only used with --tcount)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
