package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/denisok6893-rgb/property-compare/internal/commute"
	"github.com/denisok6893-rgb/property-compare/internal/fields"
	"github.com/denisok6893-rgb/property-compare/internal/listing"
	"github.com/denisok6893-rgb/property-compare/internal/output"
)

func explainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <property-id>",
		Short: "Show how each field contributes to one listing's score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid property id %q", args[0])
			}
			ds, err := a.loadDataset(cmd.Context())
			if err != nil {
				return err
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}
			for _, p := range ds.Properties {
				if p.ID != id {
					continue
				}
				return a.render(output.ExplainReport{
					Mode:          string(eng.Model().Mode()),
					Property:      p,
					Score:         eng.Score(p),
					Contributions: eng.Explain(p),
				})
			}
			return fmt.Errorf("property %d not found", id)
		},
	}
}

func commuteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "commute",
		Short: "Show total and average commute per listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset(cmd.Context())
			if err != nil {
				return err
			}
			metrics := commute.AggregateAll(ds.CommuteSamplesByProperty(), ds.CommuteSettings)

			var report output.CommuteReport
			if ds.CommuteSettings != nil {
				slots := ds.CommuteSettings.Slots()
				for _, i := range commute.ActiveSlots(ds.CommuteSettings) {
					report.Destinations = append(report.Destinations, *slots[i])
				}
			}
			ordered := listing.Arrange(listing.Inputs{Properties: ds.Properties, Commute: metrics},
				listing.Query{Sort: listing.SortCommuteAnalysis})
			for _, p := range ordered {
				row := output.CommuteRow{PropertyID: p.ID, Title: p.Title()}
				if m, ok := metrics[p.ID]; ok {
					row.Metrics = &m
				}
				report.Rows = append(report.Rows, row)
			}
			return a.render(report)
		},
	}
}

func completenessCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "completeness",
		Short: "Split listings into completed and awaiting info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset(cmd.Context())
			if err != nil {
				return err
			}
			part := listing.Classify(ds.Properties, fields.ExemptFields)

			var report output.CompletenessReport
			for _, p := range part.Completed {
				report.Completed = append(report.Completed, output.CompletenessRow{PropertyID: p.ID, Title: p.Title()})
			}
			for _, p := range part.AwaitingInfo {
				report.AwaitingInfo = append(report.AwaitingInfo, output.CompletenessRow{
					PropertyID: p.ID,
					Title:      p.Title(),
					Missing:    listing.MissingFields(p, fields.ExemptFields),
				})
			}
			return a.render(report)
		},
	}
}

func viewingsCmd(a *app) *cobra.Command {
	var day string
	cmd := &cobra.Command{
		Use:   "viewings",
		Short: "List booked viewings by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset(cmd.Context())
			if err != nil {
				return err
			}

			days := listing.ViewingDays(ds.Properties, time.Local)
			if day != "" {
				d, err := time.ParseInLocation("2006-01-02", day, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --day %q: want YYYY-MM-DD", day)
				}
				days = []time.Time{d}
			}

			var report output.ViewingsReport
			for _, d := range days {
				vd := output.ViewingDay{Day: d}
				for _, p := range listing.ViewingsOn(ds.Properties, d, time.Local) {
					vd.Viewings = append(vd.Viewings, output.Viewing{
						PropertyID: p.ID,
						Title:      p.Title(),
						At:         p.ViewDate.In(time.Local),
						Offered:    p.Offered,
					})
				}
				if len(vd.Viewings) > 0 {
					report.Days = append(report.Days, vd)
				}
			}
			return a.render(report)
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "Only this day (YYYY-MM-DD)")
	return cmd
}

func fieldsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "Print the field registry and the active weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			exempt := make(map[string]bool, len(fields.ExemptFields))
			for _, e := range fields.ExemptFields {
				exempt[e] = true
			}
			weights := m.Weights()

			report := output.FieldsReport{Mode: string(m.Mode())}
			for _, d := range fields.All() {
				row := output.FieldRow{
					Name:     d.Name,
					Label:    fields.Label(d.Name),
					Category: d.Category.String(),
					Min:      d.Min,
					Max:      d.Max,
					Required: !exempt[d.Name],
				}
				if f, ok := m.Formula(d.Name); ok {
					row.Formula = f.Shape.String()
					w := weights[d.Name]
					row.Weight = &w
				}
				report.Fields = append(report.Fields, row)
			}
			return a.render(report)
		},
	}
}
