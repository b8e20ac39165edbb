package keychain

import (
	"os"
	"strconv"

	"github.com/routeflow/ribd/internal/cli/output"
	"github.com/spf13/cobra"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List keychains",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

// keychainRow is the table/JSON projection of store.Keychain, omitting key
// secrets (those never leave the store).
type keychainRow struct {
	Name string `json:"name" yaml:"name"`
	Keys int    `json:"keys" yaml:"keys"`
}

type keychainList []keychainRow

func (l keychainList) Headers() []string { return []string{"NAME", "KEYS"} }

func (l keychainList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, k := range l {
		rows = append(rows, []string{k.Name, strconv.Itoa(k.Keys)})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	s, ctx, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	kcs, err := s.ListKeychains(ctx)
	if err != nil {
		return err
	}

	rows := make(keychainList, 0, len(kcs))
	for _, kc := range kcs {
		rows = append(rows, keychainRow{Name: kc.Name, Keys: len(kc.Keys)})
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
			os.Stdout.WriteString("No keychains configured.\n")
			return nil
		}
		return output.PrintTable(os.Stdout, rows)
	}
}
