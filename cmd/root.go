package cmd

import (
	"github.com/jsphweid/notegrid/config"
	"github.com/jsphweid/notegrid/constants"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	verbose bool
	cfg     = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "notegrid",
	Short: "Quantizes MIDI songs and splits them into measures",
	Long: `notegrid imports MIDI files, snaps them to a note grid, removes polyphony
and segments every track into measures with rests and tied notes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		if cfgPath == "" {
			cfgPath = constants.GetConfigPath()
		}
		c, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = c
		logrus.Debugf("config: %+v", *cfg)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $NOTEGRID_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
