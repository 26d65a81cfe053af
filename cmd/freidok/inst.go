// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/freidok/internal/client"
	"github.com/pdiddy/freidok/internal/engine"
	"github.com/pdiddy/freidok/internal/export"
	"github.com/pdiddy/freidok/pkg/types"
)

var instCmd = &cobra.Command{
	Use:   "inst",
	Short: "Retrieve institutions",
	Long: `Inst retrieves institutions selected by id or name, keeps names in the
preferred languages, and renders the result.`,
	Example: `  freidok inst --id 2555 --format json
  freidok inst --name forest --langs deu`,
	Args: cobra.NoArgs,
	RunE: runInst,
}

func runInst(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}
	ids, err := parseIntList(viper.GetString("id"))
	if err != nil {
		return err
	}
	start, err := startItem()
	if err != nil {
		return err
	}
	params, err := parseParams(viper.GetString("params"))
	if err != nil {
		return err
	}
	q := client.InstitutionQuery{
		IDs:       ids,
		Name:      viper.GetString("name"),
		MaxItems:  viper.GetInt("maxitems"),
		StartItem: start,
		Params:    params,
	}

	ecfg := types.DefaultEngineConfig()
	if ecfg.Languages, err = parseLanguages(viper.GetString("langs")); err != nil {
		return err
	}
	if err := engine.Validate(ecfg); err != nil {
		return usageError(err)
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

	n, err := reader.Institutions(cmd.Context(), q)
	if errors.Is(err, client.ErrDryRun) {
		return nil
	}
	if err != nil {
		return err
	}

	insts, pruned, err := engine.Institutions(n, ecfg)
	if err != nil {
		return err
	}
	logger.Info("retrieved institutions",
		zap.Int("found", insts.NumFound),
		zap.Int("exported", insts.Len()),
	)
	return writeOutput(cmd, xcfg, export.Payload{Items: insts, Tree: pruned, Generated: time.Now()})
}

func init() {
	addCommonFlags(instCmd)
	f := instCmd.Flags()
	f.String("id", "", "institution ids (comma-separated)")
	f.String("name", "", "filter by institution name (contains)")
	f.String("params", "", `additional API parameters, e.g. "transitive=true"`)
	rootCmd.AddCommand(instCmd)
}
