package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Werneck0live/lista-empresas/internal/board"
	"github.com/Werneck0live/lista-empresas/internal/models"
	"github.com/Werneck0live/lista-empresas/internal/output"
)

type listResult struct {
	Industry models.Industry  `json:"industry"`
	Red      []models.Company `json:"red"`
	Black    []models.Company `json:"black"`
}

func newListCmd(a *app) *cobra.Command {
	var industry string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List 红榜 and 黑榜",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ind := models.Industry(industry)
			if !ind.ValidFilter() {
				return fmt.Errorf("unknown industry %q (use one of: %s)", industry, strings.Join(industryNames(), ", "))
			}

			list, err := a.api.List(cmd.Context(), ind)
			if err != nil {
				a.printer.Error(board.MsgLoadFailed)
				return err
			}
			red, black := board.Partition(list)

			if asJSON {
				enc := json.NewEncoder(a.printer.Out())
				enc.SetIndent("", "  ")
				return enc.Encode(listResult{Industry: ind, Red: red, Black: black})
			}

			if err := a.printSection("红榜 (推荐)", models.TypeRed, red); err != nil {
				return err
			}
			return a.printSection("黑榜 (避雷)", models.TypeBlack, black)
		},
	}
	cmd.Flags().StringVar(&industry, "industry", string(models.IndustryAll), "filter by industry")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of tables")
	return cmd
}

func (a *app) printSection(title string, t models.ListType, items []models.Company) error {
	a.printer.Header(fmt.Sprintf("%s %d", title, len(items)), t)
	if len(items) == 0 {
		fmt.Fprintln(a.printer.Out(), a.printer.Dim("(empty)"))
		return nil
	}
	tb := output.NewTable(a.printer.Out(), []string{"name", "industry", "rating", "tags", "comment"})
	for _, c := range items {
		tb.AddRow([]string{
			c.Name,
			string(c.Industry),
			strconv.FormatFloat(c.Rating, 'f', 1, 64),
			strings.Join(c.Tags, ", "),
			c.Comment,
		})
	}
	return tb.Render()
}

func industryNames() []string {
	opts := models.FilterOptions()
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = string(o)
	}
	return out
}
