package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/admitmap/admitmap/internal/output"
	"github.com/admitmap/admitmap/internal/server"
	"github.com/admitmap/admitmap/internal/server/filter"
	"github.com/admitmap/admitmap/pkg/classify"
	"github.com/admitmap/admitmap/pkg/errors"
	"github.com/admitmap/admitmap/pkg/resolve"
	"github.com/admitmap/admitmap/pkg/schools"
	"github.com/admitmap/admitmap/pkg/sources"
)

// formatter returns the output formatter for the configured format, falling
// back to terminal detection when no format was requested.
func (a *App) formatter() (output.Formatter, output.Format, error) {
	if a.config.Format != "" {
		format, err := output.ParseFormat(a.config.Format)
		if err != nil {
			return nil, "", err
		}
		return output.NewFormatter(format), format, nil
	}
	format := output.DetectFormat("")
	return output.NewFormatter(format), format, nil
}

// NewListCommand creates the list command.
func (a *App) NewListCommand() *cobra.Command {
	var f filter.SchoolFilter
	var mdphd, casper bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schools in the catalog",
		Long: `List schools in the catalog, optionally filtered by identity or by
published matriculant averages. Range filters exclude schools that do
not report the figure.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}
			registry, err := client.Registry()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("mdphd") {
				f.MDPhD = &mdphd
			}
			if cmd.Flags().Changed("casper") {
				f.Casper = &casper
			}

			list := f.Apply(registry.List())

			formatter, format, err := a.formatter()
			if err != nil {
				return err
			}
			if format == output.FormatTable {
				return formatter.Format(cmd.OutOrStdout(), schoolsTable(list))
			}
			return formatter.Format(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringVar((*string)(&f.State), "state", "", "filter by two-letter state code")
	cmd.Flags().StringVar((*string)(&f.Degree), "degree", "", "filter by degree (MD, DO)")
	cmd.Flags().StringVar((*string)(&f.Ownership), "ownership", "", "filter by ownership (public, private)")
	cmd.Flags().StringVar(&f.NameContains, "name", "", "filter by normalized name substring")
	cmd.Flags().StringVar(&f.AppSystem, "app-system", "", "filter by application system (AMCAS, AACOMAS, TMDSAS)")
	cmd.Flags().BoolVar(&mdphd, "mdphd", false, "filter by MD/PhD program availability")
	cmd.Flags().BoolVar(&casper, "casper", false, "filter by Casper requirement")
	cmd.Flags().Float64Var(&f.MinGPA, "min-gpa", 0, "minimum average GPA")
	cmd.Flags().Float64Var(&f.MaxGPA, "max-gpa", 0, "maximum average GPA")
	cmd.Flags().IntVar(&f.MinMCAT, "min-mcat", 0, "minimum average MCAT")
	cmd.Flags().IntVar(&f.MaxMCAT, "max-mcat", 0, "maximum average MCAT")
	cmd.Flags().IntVar(&f.Limit, "limit", 0, "maximum number of schools to show")
	cmd.Flags().IntVar(&f.Offset, "offset", 0, "number of schools to skip")

	return cmd
}

// schoolsTable renders a school list as table data.
func schoolsTable(list []*schools.School) output.Data {
	data := output.Data{
		Headers: []string{"ID", "NAME", "STATE", "DEGREE", "OWNERSHIP", "GPA", "MCAT"},
	}
	for _, s := range list {
		gpa := "-"
		if v, ok := s.AvgGPA(); ok {
			gpa = strconv.FormatFloat(v, 'f', 2, 64)
		}
		mcat := "-"
		if v, ok := s.AvgMCAT(); ok {
			mcat = strconv.Itoa(v)
		}
		data.Rows = append(data.Rows, []string{
			string(s.ID), s.Name, string(s.State), string(s.Degree),
			string(s.Ownership), gpa, mcat,
		})
	}
	return data
}

// NewResolveCommand creates the resolve command.
func (a *App) NewResolveCommand() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "resolve NAME",
		Short: "Resolve an external school name to a catalog school",
		Long: `Resolve matches a loosely-written school name against the catalog and
reports which school it refers to, with the match score and method.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}

			match := client.Resolve(sources.Record{
				Source: "cli",
				Name:   args[0],
				State:  schools.State(state),
			})
			if !match.Matched() {
				return fmt.Errorf("no school matched %q", args[0])
			}

			registry, err := client.Registry()
			if err != nil {
				return err
			}
			school, _ := registry.Get(match.SchoolID)

			formatter, format, err := a.formatter()
			if err != nil {
				return err
			}
			if format == output.FormatTable {
				name := string(match.SchoolID)
				if school != nil {
					name = school.Name
				}
				return formatter.Format(cmd.OutOrStdout(), output.Data{
					Headers: []string{"ID", "NAME", "SCORE", "METHOD"},
					Rows: [][]string{{
						string(match.SchoolID), name,
						strconv.Itoa(match.Score), string(match.Method),
					}},
				})
			}
			return formatter.Format(cmd.OutOrStdout(), match)
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "two-letter state hint for the record")

	return cmd
}

// NewClassifyCommand creates the classify command.
func (a *App) NewClassifyCommand() *cobra.Command {
	var gpa float64
	var mcat int
	var state string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Grade every school against an applicant profile",
		Long: `Classify grades each catalog school as a Reach, Target, or Undershoot
for the given GPA and MCAT. Schools without published averages land in
an Unknown bucket. A state flags in-state advantage at public schools.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}

			results, err := client.Classify(classify.Profile{
				GPA:   gpa,
				MCAT:  mcat,
				State: schools.State(state),
			})
			if err != nil {
				return err
			}

			formatter, format, err := a.formatter()
			if err != nil {
				return err
			}
			if format == output.FormatTable {
				return formatter.Format(cmd.OutOrStdout(), resultsTable(results))
			}
			return formatter.Format(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().Float64Var(&gpa, "gpa", 0, "applicant GPA (required)")
	cmd.Flags().IntVar(&mcat, "mcat", 0, "applicant MCAT score (required)")
	cmd.Flags().StringVar(&state, "state", "", "applicant state of residence")
	_ = cmd.MarkFlagRequired("gpa")
	_ = cmd.MarkFlagRequired("mcat")

	return cmd
}

// resultsTable renders a classification run as table data, bucket by bucket.
func resultsTable(rs *classify.ResultSet) output.Data {
	data := output.Data{
		Headers: []string{"CATEGORY", "SCHOOL", "STATE", "GPA DIFF", "MCAT DIFF", "NOTES"},
	}
	appendBucket := func(bucket []classify.Verdict) {
		for _, v := range bucket {
			notes := ""
			if v.BelowMinimum {
				notes = "below MCAT floor"
			} else if v.InStateAdvantage {
				notes = "in-state advantage"
			} else if v.Overall == classify.CategoryUnknown {
				notes = v.Reason
			}
			gpaDiff, mcatDiff := "-", "-"
			if v.Overall != classify.CategoryUnknown {
				gpaDiff = strconv.FormatFloat(v.GPADiff, 'f', 2, 64)
				mcatDiff = strconv.Itoa(v.MCATDiff)
			}
			data.Rows = append(data.Rows, []string{
				string(v.Overall), v.SchoolName, string(v.State),
				gpaDiff, mcatDiff, notes,
			})
		}
	}
	appendBucket(rs.Reach)
	appendBucket(rs.Target)
	appendBucket(rs.Undershoot)
	appendBucket(rs.Unknown)
	return data
}

// NewEnrichCommand creates the enrich command.
func (a *App) NewEnrichCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "enrich FEED...",
		Short: "Merge external feed files into the catalog",
		Long: `Enrich resolves each feed record to a catalog school and fills in
attributes the school does not already hold. Existing values are never
overwritten. The provenance report shows what each feed contributed;
use --output to write the merged catalog back out.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}

			var records []sources.Record
			for _, path := range args {
				recs, err := sources.LoadFile(path)
				if err != nil {
					return err
				}
				records = append(records, recs...)
			}

			report, err := client.Enrich(cmd.Context(), records)
			if err != nil {
				return err
			}

			formatter, format, err := a.formatter()
			if err != nil {
				return err
			}
			if format == output.FormatTable {
				cmd.Printf("%d records, %d matched, %d attributes added, %d unmatched\n",
					report.Records, report.Matched, report.Added(), len(report.Unmatched))
				for _, u := range report.Unmatched {
					cmd.Printf("  unmatched: %s (%s)\n", u.Name, u.Source)
				}
			} else {
				if err := formatter.Format(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			}

			if outPath != "" {
				registry, err := client.Registry()
				if err != nil {
					return err
				}
				if err := schools.Save(registry, outPath); err != nil {
					return err
				}
				cmd.Printf("wrote merged catalog to %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "output", "", "write the merged catalog to this file")

	return cmd
}

// NewValidateCommand creates the validate command.
func (a *App) NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [FILE...]",
		Short: "Validate catalog, overrides, and feed files",
		Long: `Validate loads each file and reports the first problem it finds:
malformed YAML, invalid school entries, duplicate identities, or
override targets that do not exist in the catalog. Catalog files end in
.yaml and are told apart from overrides and feeds by their contents.
With no arguments it validates the configured catalog and overrides.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.validateConfigured(cmd)
			}
			for _, path := range args {
				if err := validateFile(path); err != nil {
					return err
				}
				cmd.Printf("%s: ok\n", path)
			}
			return nil
		},
	}
	return cmd
}

// validateConfigured validates whatever catalog and overrides the app is
// configured to use by constructing a client from them.
func (a *App) validateConfigured(cmd *cobra.Command) error {
	client, err := a.Client()
	if err != nil {
		return err
	}
	registry, err := client.Registry()
	if err != nil {
		return err
	}
	cmd.Printf("catalog: ok (%d schools)\n", registry.Len())
	return nil
}

// validateFile checks one file, trying each known shape in turn. An empty
// document matches every shape, so each must carry actual content to count.
func validateFile(path string) error {
	if registry, err := schools.LoadFile(path); err == nil && registry.Len() > 0 {
		return nil
	}
	if overrides, err := resolve.LoadOverridesFile(path); err == nil && len(overrides) > 0 {
		return nil
	}
	records, err := sources.LoadFile(path)
	if err == nil && len(records) > 0 {
		return nil
	}
	if err != nil {
		return err
	}
	// Valid YAML, but nothing recognizable in it; surface the catalog
	// error, the most common shape.
	if _, err := schools.LoadFile(path); err != nil {
		return err
	}
	return errors.NewValidationError("file", path, "no schools, overrides, or records found")
}

// NewServeCommand creates the serve command.
func (a *App) NewServeCommand() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve runs an HTTP API over the catalog: school listings with filters,
state and statistics endpoints, and applicant classification. The
server shuts down gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}

			cfg := server.DefaultConfig()
			cfg.Host = host
			cfg.Port = port
			cfg.RateLimit = a.config.ServerRateLimit
			cfg.CacheTTL = a.config.ServerCacheTTL
			cfg.CORSEnabled = a.config.ServerCORS

			srv := server.New(client, a.logger, cfg)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", a.config.ServerHost, "host to bind to")
	cmd.Flags().IntVar(&port, "port", a.config.ServerPort, "port to listen on")

	return cmd
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("admitmap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
