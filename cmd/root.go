package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grdimg/grd2png/internal/grdmeta"
	"github.com/grdimg/grd2png/internal/pipeline"
	"github.com/grdimg/grd2png/internal/reader"
	"github.com/grdimg/grd2png/pkg/raster"
)

// version is stamped into the serve health endpoint.
const version = "1.0.0"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "grd2png <input.tif> <format> <max-width> <max-height> <output.png>",
	Short: "Convert a GRD GeoTIFF into a normalized grayscale PNG",
	Long: `grd2png reads one band of a ground-range-detected (GRD) raster, rescales
its sample values into a selectable range, shrinks it to fit a bounding
size, and writes the result as an 8-bit grayscale PNG.

The normalization format is one of:
  0-1     values in [0, 1]
  -1-1    values in [-1, 1]
  0-255   values in [0, 255]

Examples:
  # Normalize to 0-1 and fit inside 256x256
  grd2png data/input/image.tif 0-1 256 256 data/output/image.png

  # Second band, sigma0 dB calibration, pure-Go TIFF decoder
  grd2png --band 2 --calibrate --driver tiff in.tif 0-255 512 512 out.png

  # Start HTTP server
  grd2png serve --port 8080`,
	SilenceUsage: true,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return nil
		}
		return cobra.ExactArgs(5)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no args, show help
		if len(args) == 0 {
			return cmd.Help()
		}
		return runConvert(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.grd2png.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("driver", reader.DriverGDAL, "raster decoding driver (gdal|tiff)")

	// Conversion flags
	rootCmd.Flags().IntP("band", "b", 1, "1-based band to read")
	rootCmd.Flags().Bool("calibrate", false, "apply sigma0 dB calibration after normalization")

	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("driver", rootCmd.PersistentFlags().Lookup("driver"))
	viper.BindPFlag("band", rootCmd.Flags().Lookup("band"))
	viper.BindPFlag("calibrate", rootCmd.Flags().Lookup("calibrate"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".grd2png" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".grd2png")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := logrus.StandardLogger()
	if level, err := logrus.ParseLevel(viper.GetString("log-level")); err == nil {
		log.SetLevel(level)
	}

	scheme, err := raster.ParseScheme(args[1])
	if err != nil {
		return err
	}

	maxW, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid max width %q", args[2])
	}
	maxH, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("invalid max height %q", args[3])
	}

	opener, err := reader.ForDriver(viper.GetString("driver"))
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Scheme:    scheme,
		Bound:     raster.BoundingSize{MaxWidth: maxW, MaxHeight: maxH},
		Band:      viper.GetInt("band"),
		Calibrate: viper.GetBool("calibrate"),
	}

	if err := pipeline.New(opener, log).Run(args[0], args[4], opts); err != nil {
		return err
	}

	if meta, ok := grdmeta.FromPath(args[0]); ok {
		log.Infof("image ID: %s, timestamp: %s", meta.AcquisitionID, meta.Timestamp.Format(time.RFC3339))
	}
	return nil
}
