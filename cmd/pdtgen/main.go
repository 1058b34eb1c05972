// Package main provides the CLI entry point for pdtgen.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/pdtgen-go/internal/config"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/matcher"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/toc"
)

var (
	configPath string
	verbose    bool

	designs   []string
	endpoints []string
	analytes  string
	language  string
	setupPath string
	ecrfPath  string
	codeList  string

	fromTOC bool

	matchRef        string
	matchTitle      string
	matchType       string
	matchPopulation string
	pretty          bool

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pdtgen",
		Short: "Generate TOC and PDT workbooks for clinical-trial deliverables",
		Long: `pdtgen expands a TOC template into the output list of a study, merges it
into the project PDT and fills program names from a program-name workbook.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "pdtgen.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every stage")

	tocCmd := &cobra.Command{
		Use:   "toc TEMPLATE OUTPUT",
		Short: "Expand a TOC template into a TOC workbook",
		Args:  cobra.ExactArgs(2),
		RunE:  runTOC,
	}
	addSelectionFlags(tocCmd)
	_ = tocCmd.MarkFlagRequired("design")

	pdtCmd := &cobra.Command{
		Use:   "pdt SOURCE PDT",
		Short: "Replace the Output rows of a PDT with expanded deliverables",
		Long: `pdt expands SOURCE as a TOC template and writes the result into the
deliverables sheet of PDT. With --from-toc, SOURCE is a generated TOC workbook.`,
		Args: cobra.ExactArgs(2),
		RunE: runPDT,
	}
	addSelectionFlags(pdtCmd)
	pdtCmd.Flags().BoolVar(&fromTOC, "from-toc", false, "Read SOURCE as a generated TOC workbook")

	fillCmd := &cobra.Command{
		Use:   "fill PDT SHELLS",
		Short: "Fill program names and SYSPARM values of a PDT",
		Args:  cobra.ExactArgs(2),
		RunE:  runFill,
	}
	fillCmd.Flags().StringVar(&language, "language", "", "Title language: cn or en (default: setup workbook, then cn)")
	fillCmd.Flags().StringVar(&setupPath, "setup", "", "Setup workbook carrying the LNG macro variable")

	matchCmd := &cobra.Command{
		Use:   "match SHELLS",
		Short: "Print the program name matched for one title",
		Args:  cobra.ExactArgs(1),
		RunE:  runMatch,
	}
	matchCmd.Flags().StringVar(&matchRef, "ref", "", "Output reference, e.g. 14.3.1.2")
	matchCmd.Flags().StringVar(&matchTitle, "title", "", "Output title")
	matchCmd.Flags().StringVar(&matchType, "type", "Table", "Output type: Table, Listing or Figure")
	matchCmd.Flags().StringVar(&matchPopulation, "population", "", "Analysis population")
	matchCmd.Flags().StringVar(&language, "language", "", "Title language: cn or en (default: config, then cn)")
	matchCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	_ = matchCmd.MarkFlagRequired("ref")
	_ = matchCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(tocCmd, pdtCmd, fillCmd, matchCmd)
	return rootCmd
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&designs, "design", "d", nil, "Design types in order: SAD, FE, MAD, BE, MB")
	cmd.Flags().StringSliceVarP(&endpoints, "endpoint", "e", nil,
		"Endpoints: pkconc-blood, pkconc-urine, pkconc-feces, pkparam-blood, pkparam-urine, pkparam-feces, pd, ada, qt")
	cmd.Flags().StringVar(&analytes, "analytes", "", "Pipe-delimited analytes substituted for [Analyte]")
	cmd.Flags().StringVar(&language, "language", "", "Title language: cn or en (default: setup workbook, then cn)")
	cmd.Flags().StringVar(&setupPath, "setup", "", "Setup workbook carrying the LNG macro variable")
	cmd.Flags().StringVar(&ecrfPath, "ecrf", "", "eCRF metadata workbook gating the AE.AEDIS outputs")
	cmd.Flags().StringVar(&codeList, "codelist", "", "Code-list workbook supplying the AE action labels")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(cfg.LogLevel())
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	return nil
}

func selection() (toc.Selection, error) {
	sel := toc.Selection{Analytes: toc.ParseAnalytes(analytes)}
	for _, d := range designs {
		dt, ok := models.ParseDesignType(d)
		if !ok {
			return sel, fmt.Errorf("%w: unknown design type %q", pdtgen.ErrInvalidSelection, d)
		}
		sel.DesignTypes = append(sel.DesignTypes, dt)
	}
	for _, e := range endpoints {
		ep, ok := toc.ParseEndpoint(e)
		if !ok {
			return sel, fmt.Errorf("%w: unknown endpoint %q", pdtgen.ErrInvalidSelection, e)
		}
		sel.Endpoints = append(sel.Endpoints, ep)
	}
	lang, err := parseLanguage(language)
	if err != nil {
		return sel, err
	}
	if lang == "" {
		lang = models.Language(cfg.Language)
	}
	sel.Language = lang
	return sel, nil
}

func parseLanguage(s string) (models.Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "cn", "chn", "zh":
		return models.LangCN, nil
	case "en", "eng":
		return models.LangEN, nil
	}
	return "", fmt.Errorf("invalid language: %s (must be cn or en)", s)
}

func applySelection(o *pdtgen.ExpandOptions, run *pdtgen.RunOptions) error {
	sel, err := selection()
	if err != nil {
		return err
	}
	o.Selection = sel
	o.SetupPath = setupPath
	o.ECRFPath = ecrfPath
	o.CodeListPath = codeList
	run.Logger = logger
	return nil
}

func runTOC(cmd *cobra.Command, args []string) error {
	opts := cfg.GenerateOptions()
	if err := applySelection(&opts.ExpandOptions, &opts.RunOptions); err != nil {
		return err
	}
	res, err := pdtgen.GenerateTOC(args[0], args[1], opts)
	if err != nil {
		return fmt.Errorf("toc generation failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Summary())
	return nil
}

func runPDT(cmd *cobra.Command, args []string) error {
	opts := cfg.MergeOptions()
	opts.Logger = logger

	var (
		res *pdtgen.Result
		err error
	)
	if fromTOC {
		res, err = pdtgen.MergeFromTOC(args[0], args[1], opts)
	} else {
		if err := applySelection(&opts.ExpandOptions, &opts.RunOptions); err != nil {
			return err
		}
		res, err = pdtgen.MergeDeliverables(args[0], args[1], opts)
	}
	if err != nil {
		return fmt.Errorf("pdt merge failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Summary())
	return nil
}

func runFill(cmd *cobra.Command, args []string) error {
	opts := cfg.FillOptions()
	opts.Logger = logger
	opts.SetupPath = setupPath
	lang, err := parseLanguage(language)
	if err != nil {
		return err
	}
	if lang != "" {
		opts.Language = lang
	}

	res, err := pdtgen.FillProgramNames(args[0], args[1], opts)
	if err != nil {
		return fmt.Errorf("program name fill failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Summary())
	return nil
}

// matchLanguage resolves the --language flag, then the configured language, then Chinese.
func matchLanguage() (models.Language, error) {
	lang, err := parseLanguage(language)
	if err != nil || lang != "" {
		return lang, err
	}
	if cfg != nil && cfg.Language != "" {
		return models.Language(cfg.Language), nil
	}
	return models.LangCN, nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	lang, err := matchLanguage()
	if err != nil {
		return err
	}
	m, err := pdtgen.LoadMatcher(args[0], lang)
	if err != nil {
		return err
	}

	res := m.Match(matcher.Deliverable{
		OutputReference: matchRef,
		Title:           matchTitle,
		OutputType:      models.ParseOutputType(matchType),
		Population:      matchPopulation,
	})
	logger.Debug("matched", zap.String("ref", matchRef), zap.String("section", res.Section),
		zap.String("program", res.ProgramName))

	var data []byte
	if pretty {
		data, err = json.MarshalIndent(res, "", "  ")
	} else {
		data, err = json.Marshal(res)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
