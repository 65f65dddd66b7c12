// Package main provides the CLI entrypoint for tonedrill.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tonedrill/internal/config"
	"github.com/verte-zerg/tonedrill/internal/generator"
	"github.com/verte-zerg/tonedrill/internal/ledger"
	"github.com/verte-zerg/tonedrill/internal/lexicon"
	"github.com/verte-zerg/tonedrill/internal/model"
	"github.com/verte-zerg/tonedrill/internal/speech"
	"github.com/verte-zerg/tonedrill/internal/stats"
	"github.com/verte-zerg/tonedrill/internal/statsui"
	"github.com/verte-zerg/tonedrill/internal/store"
	"github.com/verte-zerg/tonedrill/internal/tui"
)

const (
	defaultSpeechCommand = "espeak-ng -v cmn"
	defaultGenerateCount = 10
	defaultStatsSessions = 200
)

// practiceOptions holds the flags shared by the practice screen and generate.
type practiceOptions struct {
	counts        []int
	prefixes      []string
	endings       []string
	tones         []int
	lexiconPath   string
	audio         bool
	speechCommand string
	weightFloor   float64
	showWeights   bool
}

var (
	practice practiceOptions

	generateCount int
	generateSeed  int64
	generateRaw   bool

	statsClass    string
	statsSearch   string
	statsSort     string
	statsDesc     bool
	statsSessions int
	statsPlain    bool

	resetYes      bool
	resetSessions bool

	lexiconDump bool
	lexiconOut  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tonedrill",
		Short:         "TUI Mandarin listening trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}
	addPracticeFlags(rootCmd, &practice)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newLexiconCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func addPracticeFlags(cmd *cobra.Command, opts *practiceOptions) {
	defaults := lexicon.DefaultFilter()
	cmd.Flags().IntSliceVar(&opts.counts, "counts", defaults.Counts, "syllables per item, drawn uniformly")
	cmd.Flags().StringSliceVar(&opts.prefixes, "prefixes", nil, "enabled prefixes, e.g. b,zh,- (default: all)")
	cmd.Flags().StringSliceVar(&opts.endings, "endings", nil, "enabled endings, e.g. a,ong (default: all)")
	cmd.Flags().IntSliceVar(&opts.tones, "tones", defaults.Tones, "enabled tones (5 is neutral)")
	cmd.Flags().StringVar(&opts.lexiconPath, "lexicon", "", "YAML lexicon file (default: built-in)")
	cmd.Flags().BoolVar(&opts.audio, "audio", false, "speak items with the speech command")
	cmd.Flags().StringVar(&opts.speechCommand, "speech-command", defaultSpeechCommand, "text-to-speech command; the text is appended")
	cmd.Flags().Float64Var(&opts.weightFloor, "weight-floor", ledger.DefaultFloor, "minimum weight of a trained component (0-10]")
	cmd.Flags().BoolVar(&opts.showWeights, "show-weights", false, "show component weights on reveal")
}

// resolvePracticeConfig merges the config file under the flags, loads the
// lexicon and normalizes the filter against it.
func resolvePracticeConfig(cmd *cobra.Command, opts *practiceOptions) (model.Config, *lexicon.Lexicon, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	p := fileCfg.Practice
	applyIntsConfig(cmd, "counts", &opts.counts, p.Counts)
	applyStringsConfig(cmd, "prefixes", &opts.prefixes, p.Prefixes)
	applyStringsConfig(cmd, "endings", &opts.endings, p.Endings)
	applyIntsConfig(cmd, "tones", &opts.tones, p.Tones)
	applyStringConfig(cmd, "lexicon", &opts.lexiconPath, p.Lexicon)
	applyBoolConfig(cmd, "audio", &opts.audio, p.Audio)
	applyStringConfig(cmd, "speech-command", &opts.speechCommand, p.SpeechCommand)
	applyFloatConfig(cmd, "weight-floor", &opts.weightFloor, p.WeightFloor)
	applyBoolConfig(cmd, "show-weights", &opts.showWeights, p.ShowWeights)

	cfg := model.Config{
		Filter: model.FilterConfig{
			Prefixes: opts.prefixes,
			Endings:  opts.endings,
			Tones:    opts.tones,
			Counts:   opts.counts,
		},
		LexiconPath:   opts.lexiconPath,
		Audio:         opts.audio,
		SpeechCommand: opts.speechCommand,
		WeightFloor:   opts.weightFloor,
		ShowWeights:   opts.showWeights,
	}
	lex, err := loadLexicon(cfg.LexiconPath)
	if err != nil {
		return model.Config{}, nil, err
	}
	cfg, err = normalizeConfig(cfg, lex)
	if err != nil {
		return model.Config{}, nil, err
	}
	return cfg, lex, nil
}

// normalizeConfig enables every prefix and ending of lex when none are given.
func normalizeConfig(cfg model.Config, lex *lexicon.Lexicon) (model.Config, error) {
	if len(cfg.Filter.Prefixes) == 0 {
		cfg.Filter.Prefixes = lex.PrefixesInUse()
	}
	if len(cfg.Filter.Endings) == 0 {
		cfg.Filter.Endings = lex.EndingsInUse()
	}
	cfg.Filter = lexicon.NormalizeFilter(cfg.Filter)
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	for _, t := range cfg.Filter.Tones {
		if t < 1 || t > model.NeutralTone {
			return fmt.Errorf("--tones must be between 1 and %d, got %d", model.NeutralTone, t)
		}
	}
	for _, c := range cfg.Filter.Counts {
		if c <= 0 {
			return fmt.Errorf("--counts must be > 0, got %d", c)
		}
	}
	if cfg.WeightFloor <= 0 || cfg.WeightFloor > ledger.MaxFloor {
		return fmt.Errorf("--weight-floor must be in (0, %v]", ledger.MaxFloor)
	}
	return nil
}

// loadLexicon reads the configured lexicon, then the default lexicon file
// if one exists, then falls back to the built-in table.
func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		candidate := config.DefaultLexiconPath()
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	lex, err := lexicon.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon %s: %w", path, err)
	}
	return lex, nil
}

func openStore() (*store.Store, *ledger.Ledger, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	l, err := ledger.New(st, ledger.WithFloor(practice.weightFloor))
	if err != nil {
		closeStore(st)
		return nil, nil, err
	}
	return st, l, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, lex, err := resolvePracticeConfig(cmd, &practice)
	if err != nil {
		return err
	}
	gen := generator.New(lex)
	if len(gen.Available(cfg.Filter)) == 0 {
		return fmt.Errorf("%w: adjust --prefixes, --endings or --tones", generator.ErrConfiguration)
	}
	speaker, err := speech.New(lex, cfg.Audio, cfg.SpeechCommand)
	if err != nil {
		return err
	}
	if cfg.Audio {
		name := strings.Fields(cfg.SpeechCommand)[0]
		if _, err := exec.LookPath(name); err != nil {
			logErrf("speech command %q not found; continuing without audio\n", name)
			speaker = speech.Nop{}
		}
	}

	st, l, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	m := tui.NewModel(cfg, l, st, gen, speaker)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print drill items without recording answers",
		Args:  cobra.NoArgs,
		RunE:  runGenerateCmd,
	}
	addPracticeFlags(cmd, &practice)
	cmd.Flags().IntVarP(&generateCount, "number", "n", defaultGenerateCount, "number of items")
	cmd.Flags().Int64Var(&generateSeed, "seed", 0, "random seed (default: time based)")
	cmd.Flags().BoolVar(&generateRaw, "raw", false, "skip the naturalness pass")
	return cmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, lex, err := resolvePracticeConfig(cmd, &practice)
	if err != nil {
		return err
	}
	if generateCount <= 0 {
		return fmt.Errorf("--number must be > 0")
	}
	var opts []generator.Option
	if cmd.Flags().Changed("seed") {
		opts = append(opts, generator.WithSource(rand.New(rand.NewSource(generateSeed))))
	}
	gen := generator.New(lex, opts...)

	var weights generator.Weights = generator.Uniform{}
	if st, l, err := openStore(); err != nil {
		logErrf("statistics unavailable, using uniform weights: %v\n", err)
	} else {
		snap, serr := l.Snapshot(cmd.Context())
		closeStore(st)
		if serr != nil {
			logErrf("statistics unavailable, using uniform weights: %v\n", serr)
		} else {
			weights = snap
		}
	}

	out := cmd.OutOrStdout()
	for i := 0; i < generateCount; i++ {
		var item model.DrillItem
		if generateRaw {
			item, err = gen.GenerateRaw(cfg.Filter, weights)
		} else {
			item, err = gen.Generate(cfg.Filter, weights)
		}
		if err != nil {
			return err
		}
		if err := writeItem(out, lex, item); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func writeItem(w io.Writer, lex *lexicon.Lexicon, item model.DrillItem) error {
	pinyin := runewidth.FillRight(lexicon.PinyinItem(item), 24)
	text := runewidth.FillRight(lex.Text(item), 12)
	_, err := fmt.Fprintf(w, "%s %s %s\n", pinyin, text, item.Keys())
	return err
}

func newLexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "List available syllables or dump the lexicon as YAML",
		Args:  cobra.NoArgs,
		RunE:  runLexiconCmd,
	}
	addPracticeFlags(cmd, &practice)
	cmd.Flags().BoolVar(&lexiconDump, "dump", false, "write the built-in lexicon as YAML")
	cmd.Flags().StringVarP(&lexiconOut, "output", "o", "", "file for --dump (default: stdout)")
	return cmd
}

func runLexiconCmd(cmd *cobra.Command, _ []string) error {
	if lexiconDump {
		return dumpLexicon(cmd.OutOrStdout(), lexiconOut)
	}
	cfg, lex, err := resolvePracticeConfig(cmd, &practice)
	if err != nil {
		return err
	}
	units := generator.New(lex).Available(cfg.Filter)
	if len(units) == 0 {
		return generator.ErrConfiguration
	}
	out := cmd.OutOrStdout()
	for _, u := range units {
		forms := strings.Join(lex.Forms(u), "")
		line := fmt.Sprintf("%s %s %s",
			runewidth.FillRight(lexicon.Pinyin(u), 8),
			runewidth.FillRight(u.Key(), 10),
			forms,
		)
		if _, err := fmt.Fprintln(out, strings.TrimRight(line, " ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func dumpLexicon(stdout io.Writer, path string) error {
	data, err := lexicon.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode lexicon: %w", err)
	}
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create lexicon directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write lexicon: %w", err)
	}
	logErrf("Wrote %s\n", path)
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsClass, "class", "", "component class: prefix, ending, tone, unit, combination")
	cmd.Flags().StringVar(&statsSearch, "search", "", "filter components by value")
	cmd.Flags().StringVar(&statsSort, "sort", ledger.SortWeight.String(), "sort by class, value, attempts, success, last or weight")
	cmd.Flags().BoolVar(&statsDesc, "desc", true, "sort descending")
	cmd.Flags().IntVar(&statsSessions, "sessions", defaultStatsSessions, "recent sessions in the summary")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print tables instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "sort", &statsSort, fileCfg.Stats.Sort)
	applyBoolConfig(cmd, "desc", &statsDesc, fileCfg.Stats.Desc)
	applyIntConfig(cmd, "sessions", &statsSessions, fileCfg.Stats.Sessions)
	applyFloatConfig(cmd, "weight-floor", &practice.weightFloor, fileCfg.Practice.WeightFloor)

	cfg := model.StatsConfig{
		Class:    statsClass,
		Search:   statsSearch,
		SortBy:   statsSort,
		Desc:     statsDesc,
		Sessions: statsSessions,
	}
	if _, err := stats.QueryFromConfig(cfg); err != nil {
		return err
	}

	st, l, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if statsPlain || !isTTY {
		report, err := stats.BuildReport(cmd.Context(), l, st, cfg)
		if err != nil {
			return err
		}
		return stats.RenderReport(cmd.OutOrStdout(), report, isTTY)
	}

	m := statsui.NewModel(l, st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset all statistics",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().BoolVar(&resetSessions, "sessions", false, "also clear the session history")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Reset all statistics? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			logErrln("Aborted.")
			return nil
		}
	}
	st, l, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := l.ResetAll(ctx); err != nil {
		return err
	}
	if resetSessions {
		if err := st.ClearSessions(ctx); err != nil {
			return fmt.Errorf("failed to clear sessions: %w", err)
		}
	}
	logErrln("Statistics reset.")
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprint(out, prompt); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringsConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), (*value)...)
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntsConfig(cmd *cobra.Command, name string, target, value *[]int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = append([]int(nil), (*value)...)
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tonedrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# counts = [1, 2, 3]                 # Syllables per item
# prefixes = ["", "b", "zh"]         # Enabled prefixes ("" is the empty prefix; default all)
# endings = ["a", "ong", "ü"]        # Enabled endings (default all)
# tones = [1, 2, 3, 4, 5]            # Enabled tones, 5 is neutral
# lexicon = %q
# audio = false                      # Speak items through speech-command
# speech-command = %q
# weight-floor = %.1f                # Minimum weight of a trained component (0-10]
# show-weights = false               # Show component weights on reveal

[stats]
# sort = "weight"                    # class, value, attempts, success, last, weight
# desc = true
# sessions = %d                     # Recent sessions in the summary
`,
		config.DefaultLexiconPath(),
		defaultSpeechCommand,
		ledger.DefaultFloor,
		defaultStatsSessions,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
