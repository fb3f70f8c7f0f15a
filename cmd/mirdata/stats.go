package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mirdata/internal/dataset"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] <dataset>",
	Short: "Summarize a dataset file",
	Long:  "Read a dataset back and print its header and per-record throughput statistics.",
	Args:  cobra.ExactArgs(1),
	RunE:  statsExecution,
}

func statsExecution(cmd *cobra.Command, args []string) error {
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	if err := applyColorMode(colorMode); err != nil {
		return err
	}

	r, err := dataset.Open(args[0])
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Close()
	}()

	var (
		records      int
		instructions int
		minTput      = math.Inf(1)
		maxTput      = math.Inf(-1)
		sumTput      float64
	)
	for {
		ex, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		records++
		instructions += len(ex.Block.Instructions)
		sumTput += ex.Throughput
		minTput = math.Min(minTput, ex.Throughput)
		maxTput = math.Max(maxTput, ex.Throughput)
	}

	hdr := r.Header()
	label := color.New(color.Bold)
	fmt.Fprintf(os.Stdout, "%s %s\n", label.Sprint("source:"), hdr.SourceName)
	fmt.Fprintf(os.Stdout, "%s %s\n", label.Sprint("run id:"), hdr.RunID)
	fmt.Fprintf(os.Stdout, "%s %s\n", label.Sprint("created:"), hdr.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(os.Stdout, "%s %d\n", label.Sprint("records:"), records)
	if records == 0 {
		return nil
	}
	fmt.Fprintf(os.Stdout, "%s %d (%.1f per block)\n",
		label.Sprint("instructions:"), instructions, float64(instructions)/float64(records))
	fmt.Fprintf(os.Stdout, "%s min %.4f  mean %.4f  max %.4f\n",
		label.Sprint("throughput:"), minTput, sumTput/float64(records), maxTput)
	return nil
}
