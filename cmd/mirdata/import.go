package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mirdata/internal/canon"
	"mirdata/internal/dataset"
	"mirdata/internal/importer"
	"mirdata/internal/mir"
	"mirdata/internal/observ"
)

var importCmd = &cobra.Command{
	Use:   "import [flags]",
	Short: "Import MIR dumps and throughput measurements into a dataset",
	Long: "Import basic blocks and throughput data from a directory of .mir dumps paired with " +
		".ll.perf measurement files, writing one dataset record per matched block.",
	Args: cobra.NoArgs,
	RunE: importExecution,
}

func importExecution(cmd *cobra.Command, args []string) (retErr error) {
	inputDir, err := cmd.Flags().GetString("input-dir")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	sourceName, err := cmd.Flags().GetString("source-name")
	if err != nil {
		return err
	}
	scaling, err := cmd.Flags().GetFloat64("scaling")
	if err != nil {
		return err
	}
	triple, err := cmd.Flags().GetString("triple")
	if err != nil {
		return err
	}
	nameColumn, err := cmd.Flags().GetInt("name-column")
	if err != nil {
		return err
	}
	throughputColumn, err := cmd.Flags().GetInt("throughput-column")
	if err != nil {
		return err
	}
	delimiter, err := cmd.Flags().GetString("delimiter")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	if err := applyColorMode(colorMode); err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	manifest, manifestFound, err := loadRunManifest(".")
	if err != nil {
		return err
	}
	if manifestFound {
		mc := manifest.Config.Import
		if !cmd.Flags().Changed("input-dir") && mc.InputDir != "" {
			inputDir = resolveAgainst(manifest.Root, mc.InputDir)
		}
		if !cmd.Flags().Changed("output") && mc.Output != "" {
			output = resolveAgainst(manifest.Root, mc.Output)
		}
		if !cmd.Flags().Changed("source-name") && mc.SourceName != "" {
			sourceName = mc.SourceName
		}
		if !cmd.Flags().Changed("scaling") && mc.Scaling != nil {
			scaling = *mc.Scaling
		}
		if !cmd.Flags().Changed("triple") && mc.Triple != "" {
			triple = mc.Triple
		}
		if !cmd.Flags().Changed("name-column") && mc.NameColumn != nil {
			nameColumn = *mc.NameColumn
		}
		if !cmd.Flags().Changed("throughput-column") && mc.ThroughputColumn != nil {
			throughputColumn = *mc.ThroughputColumn
		}
		if !cmd.Flags().Changed("delimiter") && mc.Delimiter != "" {
			delimiter = mc.Delimiter
		}
	}

	if inputDir == "" {
		return errors.New("missing input directory (--input-dir or mirdata.toml)")
	}
	if output == "" {
		return errors.New("missing output path (--output or mirdata.toml)")
	}
	nameCol, err := safecast.Conv[uint](nameColumn)
	if err != nil {
		return fmt.Errorf("invalid --name-column %d: %w", nameColumn, err)
	}
	throughputCol, err := safecast.Conv[uint](throughputColumn)
	if err != nil {
		return fmt.Errorf("invalid --throughput-column %d: %w", throughputColumn, err)
	}

	lineOpts := importer.LineOptions{
		SourceName:       sourceName,
		Delimiter:        delimiter,
		NameColumn:       nameCol,
		ThroughputColumn: throughputCol,
		Scaling:          scaling,
	}
	if err := lineOpts.Validate(); err != nil {
		return err
	}

	canonicalizer, err := canon.ForTriple(triple)
	if err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	writer, err := dataset.Create(output, sourceName)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := writer.Close(); closeErr != nil && retErr == nil {
			retErr = closeErr
		}
	}()

	timer := observ.NewTimer()
	scanIdx := timer.Begin("scan")
	files, err := importer.ListModuleFiles(inputDir)
	timer.End(scanIdx, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return err
	}

	req := &importer.Request{
		InputDir:      inputDir,
		Line:          lineOpts,
		Loader:        importer.LoaderFunc(mir.Load),
		Canonicalizer: canonicalizer,
		Sink:          writer,
	}

	importIdx := timer.Begin("import")
	var res importer.Result
	if shouldUseTUI(uiModeValue) && !quiet && len(files) > 0 {
		res, err = runImportWithUI(cmd.Context(), "mirdata import", files, req)
	} else {
		res, err = importer.Run(cmd.Context(), req)
	}
	timer.End(importIdx, res.Counters.String())

	flushIdx := timer.Begin("flush")
	if flushErr := writer.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}
	timer.End(flushIdx, "")

	if timings {
		fmt.Fprint(os.Stdout, timer.Summary())
	}
	if err != nil {
		return err
	}

	if !quiet {
		recordCount := color.New(color.FgGreen, color.Bold).Sprint(writer.Len())
		fmt.Fprintf(os.Stdout, "wrote %s records to %s\n", recordCount, output)
		fmt.Fprintf(os.Stdout, "files: %d processed, %d skipped; blocks: %d processed, %d skipped\n",
			res.Counters.FilesProcessed, res.Counters.FilesSkipped,
			res.Counters.BlocksProcessed, res.Counters.BlocksSkipped)
	}
	return nil
}

// resolveAgainst interprets manifest-relative paths.
func resolveAgainst(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func init() {
	importCmd.Flags().String("input-dir", "", "directory containing .mir dumps and .ll.perf measurement files")
	importCmd.Flags().String("output", "", "dataset file to write")
	importCmd.Flags().String("source-name", "", "provenance label stamped on every record")
	importCmd.Flags().Float64("scaling", 1.0, "scaling coefficient applied to throughput values")
	importCmd.Flags().String("triple", "x86_64", "target triple for instruction canonicalization")
	importCmd.Flags().Int("name-column", 0, "measurement column holding the block name")
	importCmd.Flags().Int("throughput-column", 2, "measurement column holding the throughput value")
	importCmd.Flags().String("delimiter", ",", "measurement field delimiter")
	importCmd.Flags().String("ui", "auto", "progress interface (auto|on|off)")
}
