package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/denisok6893-rgb/property-compare/internal/commute"
	"github.com/denisok6893-rgb/property-compare/internal/fields"
	"github.com/denisok6893-rgb/property-compare/internal/listing"
	"github.com/denisok6893-rgb/property-compare/internal/output"
)

func rankCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rank",
		Short: "Score every listing and print them in sort order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(cmd, a)
		},
	}
}

func runRank(cmd *cobra.Command, a *app) error {
	ds, err := a.loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	eng, err := a.engine()
	if err != nil {
		return err
	}

	filter, err := listing.ParseFilter(a.cfg.Filter)
	if err != nil {
		return err
	}
	sortKey, err := listing.ParseSortKey(a.cfg.Sort)
	if err != nil {
		return err
	}

	scores := eng.ScoreAll(ds.Properties)
	metrics := commute.AggregateAll(ds.CommuteSamplesByProperty(), ds.CommuteSettings)

	ordered := listing.Arrange(listing.Inputs{
		Properties: ds.Properties,
		Scores:     scores,
		Commute:    metrics,
		Likes:      ds.Likes,
	}, listing.Query{Search: a.cfg.Search, Filter: filter, Sort: sortKey})

	if filter.Kind == listing.FilterLikedBy && len(ordered) == 0 {
		known := listing.Likers(ds.Properties, ds.Likes)
		a.log.Warn("no listings liked by user", map[string]interface{}{
			"user":   filter.UserID,
			"likers": known,
		})
	}

	report := output.RankReport{
		Mode:   string(eng.Model().Mode()),
		Search: a.cfg.Search,
		Filter: filter.String(),
		Sort:   string(sortKey),
		Total:  len(ds.Properties),
	}
	for i, p := range ordered {
		if a.cfg.Limit > 0 && i >= a.cfg.Limit {
			break
		}
		row := output.RankRow{
			Rank:     i + 1,
			Property: p,
			Score:    scores[p.ID],
			LikedBy:  ds.Likes[p.ID],
			Complete: listing.IsComplete(p, fields.ExemptFields),
		}
		if m, ok := metrics[p.ID]; ok {
			row.Commute = &m
		}
		report.Rows = append(report.Rows, row)
	}

	nonFinite := 0
	for _, s := range scores {
		if !s.HasFiniteScore() {
			nonFinite++
		}
	}
	a.log.Info("ranked listings", map[string]interface{}{
		"listings":   len(ds.Properties),
		"shown":      len(report.Rows),
		"non_finite": nonFinite,
		"sort":       string(sortKey),
		"filter":     filter.String(),
	})

	if err := a.render(report); err != nil {
		return fmt.Errorf("render ranking: %w", err)
	}
	return nil
}
