package main

import (
	"encoding/json"

	"github.com/Alp4ka/pagesearch"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type searchFlags struct {
	username string
	teamName string
	ageMin   int
	ageMax   int
	offset   int
	limit    int
	sort     []string
	all      bool
}

func newSearchCmd() *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one member search and print the result as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			condition := f.condition(cmd)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			if f.all {
				rows, err := a.executor.Search(cmd.Context(), condition)
				if err != nil {
					return err
				}
				return enc.Encode(rows)
			}

			sort, err := pagesearch.ParseSort(f.sort, pagesearch.MemberColumnMapping)
			if err != nil {
				return err
			}

			res, err := a.executor.SearchPage(cmd.Context(), condition, pagesearch.PageRequest{
				Offset: f.offset,
				Limit:  f.limit,
				Sort:   sort,
			})
			if err != nil {
				return err
			}
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVar(&f.username, "username", "", "exact username")
	cmd.Flags().StringVar(&f.teamName, "team", "", "exact team name")
	cmd.Flags().IntVar(&f.ageMin, "age-min", 0, "inclusive minimum age")
	cmd.Flags().IntVar(&f.ageMax, "age-max", 0, "inclusive maximum age")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "rows to skip")
	cmd.Flags().IntVar(&f.limit, "limit", pagesearch.DefaultLimit, "page size")
	cmd.Flags().StringSliceVar(&f.sort, "sort", nil, `sort items such as "age desc"`)
	cmd.Flags().BoolVar(&f.all, "all", false, "return every match without paging")

	return cmd
}

// condition only sets the fields whose flags were given, so that --age-min=0
// filters while an absent flag does not.
func (f searchFlags) condition(cmd *cobra.Command) pagesearch.FilterCondition {
	var c pagesearch.FilterCondition

	if cmd.Flags().Changed("username") {
		c.Username = lo.ToPtr(f.username)
	}
	if cmd.Flags().Changed("team") {
		c.TeamName = lo.ToPtr(f.teamName)
	}
	if cmd.Flags().Changed("age-min") {
		c.AgeMin = lo.ToPtr(f.ageMin)
	}
	if cmd.Flags().Changed("age-max") {
		c.AgeMax = lo.ToPtr(f.ageMax)
	}

	return c
}
