// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/freidok/internal/client"
	"github.com/pdiddy/freidok/internal/engine"
	"github.com/pdiddy/freidok/internal/export"
	"github.com/pdiddy/freidok/internal/modify"
	"github.com/pdiddy/freidok/pkg/types"
)

// bareAbbrev is the value --authors-abbrev takes without an argument:
// initials with no separator.
const bareAbbrev = "''"

var publCmd = &cobra.Command{
	Use:   "publ",
	Short: "Retrieve publications",
	Long: `Publ retrieves publications selected by id, person, institution, project
or title, keeps titles and abstracts in the preferred languages, drops
records matching the exclusion patterns, composes the author list, and
renders the result.

At least one of --id, --pers-id, --inst-id, --proj-id or --title is
required unless --source names a local JSON file.`,
	Example: `  freidok publ --pers-id 1234 --years 2020-2023 --out pubs.html
  freidok publ --inst-id 42 --authors-abbrev=. --authors-reverse --format csl`,
	Args: cobra.NoArgs,
	RunE: runPubl,
}

func runPubl(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}
	q, err := publicationQuery(cmd)
	if err != nil {
		return err
	}
	ecfg, err := publEngineConfig(cmd)
	if err != nil {
		return err
	}
	ccfg, err := clientConfig()
	if err != nil {
		return err
	}
	xcfg, err := exportConfig()
	if err != nil {
		return err
	}

	reader, release, err := newReader(cmd, ccfg, cacheConfig())
	if err != nil {
		return err
	}
	defer release()

	n, err := reader.Publications(cmd.Context(), q)
	if errors.Is(err, client.ErrDryRun) {
		return nil
	}
	if err != nil {
		return err
	}

	pubs, pruned, err := engine.Publications(n, ecfg)
	if err != nil {
		return err
	}
	logger.Info("retrieved publications",
		zap.Int("found", pubs.NumFound),
		zap.Int("exported", pubs.Len()),
	)
	return writeOutput(cmd, xcfg, export.Payload{Items: pubs, Tree: pruned, Generated: time.Now()})
}

func publicationQuery(cmd *cobra.Command) (client.PublicationQuery, error) {
	var q client.PublicationQuery
	var err error
	for flag, dst := range map[string]*[]int{
		"id": &q.IDs, "pers-id": &q.PersIDs, "inst-id": &q.InstIDs, "proj-id": &q.ProjIDs,
	} {
		if *dst, err = parseIntList(viper.GetString(flag)); err != nil {
			return q, err
		}
	}
	q.Title = viper.GetString("title")
	if q.YearFrom, q.YearTo, err = parseYears(viper.GetString("years")); err != nil {
		return q, err
	}
	if q.Fields, err = requestedFields(cmd); err != nil {
		return q, err
	}
	q.Sort = sortFields(q.Fields)
	q.MaxPers = viper.GetInt("maxpers")
	q.MaxItems = viper.GetInt("maxitems")
	if q.StartItem, err = startItem(); err != nil {
		return q, err
	}
	if q.Params, err = parseParams(viper.GetString("params")); err != nil {
		return q, err
	}
	return q, nil
}

// requestedFields resolves --fields or --fieldset into an explicit list.
func requestedFields(cmd *cobra.Command) ([]string, error) {
	if cmd.Flags().Changed("fields") && cmd.Flags().Changed("fieldset") {
		return nil, usageErrorf("--fields and --fieldset are mutually exclusive")
	}
	if fields := splitList(viper.GetString("fields")); len(fields) > 0 {
		if bad := unknownFields(fields); len(bad) > 0 {
			return nil, usageErrorf("unknown field(s) %s", strings.Join(bad, ", "))
		}
		return fields, nil
	}
	sets := fieldsets(os.Environ())
	name := viper.GetString("fieldset")
	if name == "" {
		name = "default"
	}
	fields, ok := sets[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(sets))
		for n := range sets {
			names = append(names, n)
		}
		slices.Sort(names)
		return nil, usageErrorf("unknown fieldset %q (available: %s)", name, strings.Join(names, ", "))
	}
	return fields, nil
}

func publEngineConfig(cmd *cobra.Command) (types.EngineConfig, error) {
	cfg := types.DefaultEngineConfig()
	langs, err := parseLanguages(viper.GetString("langs"))
	if err != nil {
		return cfg, err
	}
	cfg.Languages = langs
	cfg.PreferredIDTypes = splitList(viper.GetString("id-types"))
	if viper.IsSet("authors-abbrev") {
		sep := viper.GetString("authors-abbrev")
		if sep == bareAbbrev {
			sep = ""
		}
		cfg.AuthorsAbbrev = &sep
	}
	cfg.AuthorsReverse = viper.GetBool("authors-reverse")
	cfg.AuthorsSep = viper.GetString("authors-sep")
	cfg.ExcludeAuthors = stringList(cmd, "exclude-author", "exclude_authors")
	cfg.ExcludeTitles = stringList(cmd, "exclude-title", "exclude_titles")

	if err := engine.Validate(cfg); err != nil {
		return cfg, usageError(err)
	}
	return cfg, nil
}

func init() {
	addCommonFlags(publCmd)
	f := publCmd.Flags()
	f.String("id", "", "publication ids (comma-separated)")
	f.String("pers-id", "", "filter by person ids (comma-separated)")
	f.String("inst-id", "", "filter by institution ids (comma-separated)")
	f.String("proj-id", "", "filter by project ids (comma-separated)")
	f.String("title", "", "filter by title (contains)")
	f.String("years", "", "filter by publication year: YYYY or YYYY-YYYY")
	f.Int("maxpers", 0, "limit the number of listed authors")
	f.StringArray("exclude-author", nil, "exclude publications with an author name containing NAME (repeatable, case-insensitive)")
	f.StringArray("exclude-title", nil, "exclude publications with a title containing TEXT (repeatable, case-insensitive)")
	f.String("fields", "", "fields to include in the response (comma-separated)")
	f.String("fieldset", "", "predefined set of fields (default: default)")
	f.String("params", "", `additional API parameters, e.g. "transitive=true pubtype=book"`)
	f.String("authors-abbrev", "", "abbreviate author forenames, with an optional separator after each initial")
	f.Lookup("authors-abbrev").NoOptDefVal = bareAbbrev
	f.Bool("authors-reverse", false, `list authors as "surname forename"`)
	f.String("authors-sep", modify.DefaultAuthorSeparator, "separator between authors")
	f.String("id-types", strings.Join(modify.DefaultIdentifierTypes, ","), "identifier types listed first (comma-separated)")
	rootCmd.AddCommand(publCmd)
}
