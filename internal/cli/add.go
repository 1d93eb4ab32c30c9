package cli

import (
	"errors"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Werneck0live/lista-empresas/internal/board"
)

func newAddCmd(a *app) *cobra.Command {
	def := board.DefaultForm()
	values := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Post a new record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// mesmas regras do modal da página
			form := board.DefaultForm()
			for _, field := range []string{"name", "industry", "type", "rating", "tags", "comment"} {
				if err := form.Set(field, *values[field]); err != nil {
					return err
				}
			}
			if err := form.Validate(); err != nil {
				var verr *board.ValidationError
				if errors.As(err, &verr) {
					fields := make([]string, 0, len(verr.Fields))
					for f := range verr.Fields {
						fields = append(fields, f)
					}
					sort.Strings(fields)
					for _, f := range fields {
						a.printer.Error("--%s is %s", f, verr.Fields[f])
					}
				}
				return err
			}

			created, err := a.api.Create(cmd.Context(), form.Input())
			if err != nil {
				a.printer.Error(board.MsgPostFailed)
				return err
			}
			a.printer.Success("%s %s (%s)", board.MsgPostOK, created.Name, created.ID)
			return nil
		},
	}

	f := cmd.Flags()
	values["name"] = f.String("name", "", "company name (required)")
	values["comment"] = f.String("comment", "", "review text (required)")
	values["industry"] = f.String("industry", string(def.Industry), "industry")
	values["type"] = f.String("type", string(def.Type), "list: red or black")
	values["rating"] = f.String("rating", def.Rating, "rating 1-5")
	values["tags"] = f.String("tags", "", "tags separated by , or ，")
	return cmd
}
