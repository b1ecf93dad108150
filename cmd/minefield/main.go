package main

import (
	"context"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/logging"
	"github.com/vancomm/minefield/internal/mines"
)

var version = "dev"

type cli struct {
	v   *viper.Viper
	cfg *config.Config
	log *logrus.Logger
}

func createRand(seed uint64) *rand.Rand {
	if seed != 0 {
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (c *cli) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.v)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log, cfg.Development)
	if err != nil {
		return err
	}
	mines.Log = log
	c.cfg, c.log = cfg, log
	log.WithFields(cfg.Fields()).Debug("config")
	return nil
}

func bindFlag(v *viper.Viper, f *pflag.Flag) error {
	key, ok := flagKeys[f.Name]
	if !ok {
		return fmt.Errorf("flag --%s has no config key", f.Name)
	}
	return v.BindPFlag(key, f)
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	c := &cli{v: v}
	defaults := config.Default()

	root := &cobra.Command{
		Use:               "minefield",
		Short:             "Minesweeper in the terminal or over websockets",
		SilenceUsage:      true,
		PersistentPreRunE: c.load,
	}

	flags := root.PersistentFlags()
	flags.StringP(FlagConfig, "c", "", "config file path")
	flags.Int(FlagRows, defaults.Rows, "board rows")
	flags.Int(FlagCols, defaults.Cols, "board columns")
	flags.Int(FlagMines, defaults.Mines, "number of mines")
	flags.String(FlagPlacement, defaults.Placement,
		"squares kept free around the first open: cross or cell")
	flags.Uint64(FlagSeed, 0, "random seed, 0 picks one")
	flags.String(FlagAddr, defaults.Addr, "address to serve on")
	flags.Bool(FlagDevelopment, false, "development mode")
	flags.StringSlice(FlagAllowedOrigins, nil, "origins allowed to connect")
	flags.String(FlagLogLevel, defaults.Log.Level, "log level")
	flags.String(FlagLogFile, "", "also log to this file, rotated")

	flags.VisitAll(func(f *pflag.Flag) {
		if err := bindFlag(v, f); err != nil {
			panic(err)
		}
	})

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// no config needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "minefield", version)
		},
	}

	root.AddCommand(versionCmd, newPlayCmd(c), newServeCmd(c))
	return root
}

func main() {
	if err := newRootCmd(viper.New()).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
