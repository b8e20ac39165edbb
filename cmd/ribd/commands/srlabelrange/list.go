package srlabelrange

import (
	"os"
	"strconv"

	"github.com/routeflow/ribd/internal/cli/output"
	"github.com/spf13/cobra"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List label range bindings",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

type rangeRow struct {
	Name  string `json:"name" yaml:"name"`
	Start uint32 `json:"start" yaml:"start"`
	End   uint32 `json:"end" yaml:"end"`
}

type rangeList []rangeRow

func (l rangeList) Headers() []string { return []string{"NAME", "START", "END"} }

func (l rangeList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, r := range l {
		rows = append(rows, []string{r.Name, strconv.FormatUint(uint64(r.Start), 10), strconv.FormatUint(uint64(r.End), 10)})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	s, ctx, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	bindings, err := s.ListSRLabelRanges(ctx)
	if err != nil {
		return err
	}

	rows := make(rangeList, 0, len(bindings))
	for _, b := range bindings {
		rows = append(rows, rangeRow{Name: b.Name, Start: b.Start, End: b.End})
	}

	format, err := output.ParseFormat(listOutput)
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, rows)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, rows)
	default:
		if len(rows) == 0 {
			os.Stdout.WriteString("No label range bindings configured.\n")
			return nil
		}
		return output.PrintTable(os.Stdout, rows)
	}
}
