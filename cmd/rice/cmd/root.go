/*
Copyright © 2025 Jorge Gonzalez

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/jorgegonzalez/rice"
	"github.com/jorgegonzalez/rice/internal/config"
	"github.com/jorgegonzalez/rice/internal/sysinfo"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// flags of the root command
type flags struct {
	verbose     bool
	configPath  string
	imagePath   string
	noLogo      bool
	logo        string
	format      string
	printConfig bool
	detect      bool
}

var opts flags

func init() {
	log.SetHandler(clihander.Default)
	f := rootCmd.Flags()
	f.BoolVarP(&opts.verbose, "verbose", "V", false, "Enable verbose logging")
	f.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default $XDG_CONFIG_HOME/rice/config.toml)")
	f.StringVarP(&opts.imagePath, "image", "i", "", "Show an image instead of ASCII art")
	f.BoolVar(&opts.noLogo, "no-logo", false, "Print system information only")
	f.StringVar(&opts.logo, "logo", "", "Force a builtin logo ("+strings.Join(rice.Logos(), ", ")+")")
	f.StringVar(&opts.format, "format", "text", "Output format (text, json)")
	f.BoolVar(&opts.printConfig, "print-config", false, "Print the default config file and exit")
	f.BoolVar(&opts.detect, "detect", false, "Print the detected terminal capabilities and exit")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "rice",
	Short:         "Show system information next to an ASCII logo or an image",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if opts.verbose {
			log.SetLevel(log.DebugLevel)
		}
		w := cmd.OutOrStdout()

		if opts.printConfig {
			_, err := w.Write(config.DefaultTOML)
			return err
		}
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		if opts.detect {
			return printDetect(w, detectEnvironment(cfg, nil), rice.DetectCellMetrics)
		}
		timeout, err := cfg.Timeout()
		if err != nil {
			return err
		}
		src := sysinfo.New(sysinfo.Options{
			Commands: cfg.Info.CustomCommands,
			Timeout:  timeout,
		})
		return run(w, cfg, src, opts, nil)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

// run prints the info block described by cfg and f. lookup replaces the
// process environment when non-nil.
func run(w io.Writer, cfg *config.Config, src rice.FieldSource, f flags, lookup rice.LookupFunc) error {
	switch f.format {
	case "json":
		fields := rice.BuildFields(cfg.Info.Fields, src, rice.FieldOptions{})
		return writeJSON(w, fields, src)
	case "text", "":
	default:
		return fmt.Errorf("unknown format %q: want text or json", f.format)
	}

	ro := renderOptions(w, cfg, f)
	ro.Lookup = lookup
	fields := rice.BuildFields(cfg.Info.Fields, src, rice.FieldOptions{
		Colors: cfg.Display.FieldColors,
		Bars:   cfg.Display.Bars,
	})

	res, err := rice.Render(w, fields, ro)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.WithFields(log.Fields{
		"protocol": res.Environment.Protocol,
		"width":    res.Layout.Footprint.Width,
		"height":   res.Layout.Footprint.Height,
		"fields":   len(fields),
	}).Debug("rendered")
	return nil
}

func renderOptions(w io.Writer, cfg *config.Config, f flags) rice.Options {
	ro := rice.Options{
		Art:               cfg.ArtConfig(),
		ImagePath:         rice.ExpandHome(f.imagePath),
		NoLogo:            f.noLogo || !cfg.Display.ShowLogo,
		Gap:               cfg.Display.Gap,
		Filter:            cfg.Filter(),
		Protocol:          cfg.Image.Protocol,
		EnablePassthrough: true,
		Style: rice.InfoStyle{
			Renderer:        rice.NewRenderer(w, nil),
			ColorValues:     cfg.Display.ColorValues,
			ShowColorsLabel: cfg.Display.ShowColorsLabel,
		},
		Logger: log.Log,
	}
	if f.logo != "" {
		if _, ok := rice.Logo(f.logo); !ok {
			log.Warnf("unknown logo %q, available: %s", f.logo, strings.Join(rice.Logos(), ", "))
		}
		ro.Art.Source = rice.SourceBuiltin
		ro.Art.Builtin = f.logo
	}
	return ro
}

type jsonField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type jsonUsage struct {
	Used  uint64 `json:"used"`
	Total uint64 `json:"total"`
}

type jsonReport struct {
	Fields []jsonField `json:"fields"`
	Memory *jsonUsage  `json:"memory,omitempty"`
	Disk   *jsonUsage  `json:"disk,omitempty"`
}

func writeJSON(w io.Writer, fields []rice.InfoField, src rice.FieldSource) error {
	report := jsonReport{Fields: make([]jsonField, 0, len(fields))}
	for _, f := range fields {
		report.Fields = append(report.Fields, jsonField{Key: f.Key, Label: f.Label, Value: f.Value})
	}
	if usage, ok := src.(rice.UsageSource); ok {
		report.Memory = usageOf(usage, rice.FieldMemory)
		report.Disk = usageOf(usage, rice.FieldDisk)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func usageOf(src rice.UsageSource, key string) *jsonUsage {
	used, total, ok := src.Usage(key)
	if !ok {
		return nil
	}
	return &jsonUsage{Used: used, Total: total}
}

// detectEnvironment detects the terminal the way a render with cfg does.
func detectEnvironment(cfg *config.Config, lookup rice.LookupFunc) rice.Environment {
	return rice.DetectEnvironment(lookup, cfg.Image.Protocol)
}

func printDetect(w io.Writer, env rice.Environment, metrics func(rice.Environment) rice.CellMetrics) error {
	cell := metrics(env)
	terminal := env.TermProgram
	if terminal == "" {
		terminal = "unknown"
	}
	_, err := fmt.Fprintf(w, "Protocol:    %s\nMultiplexed: %t\nTerminal:    %s\nCell size:   %dx%d px\n",
		env.Protocol, env.Multiplexed, terminal, cell.Width, cell.Height)
	return err
}
