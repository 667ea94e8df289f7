package main

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/bizhealth/internal/model"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change stored user settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored settings as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, "cli", nil)
		if err != nil {
			return err
		}
		defer env.Close()

		s, err := env.Store.LoadSettings(ctx)
		if err != nil {
			return err
		}
		return writeYAML(cmd, s)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings; unspecified values are kept",
	Long: `Changes the stored settings. Benchmark overrides use dotted keys:

  bizhealth settings set --currency EUR --lang en
  bizhealth settings set --benchmark website.targetConversionRate=0.06 \
                         --benchmark reputation.targetRating=4.6`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, "cli", nil)
		if err != nil {
			return err
		}
		defer env.Close()

		s, err := env.Store.LoadSettings(ctx)
		if err != nil {
			return err
		}

		f := cmd.Flags()
		if v, _ := f.GetString("currency"); v != "" {
			s.Currency = model.Currency(strings.ToUpper(v))
		}
		if v, _ := f.GetString("lang"); v != "" {
			s.Language = model.Language(v)
		}
		if v, _ := f.GetString("theme"); v != "" {
			s.Theme = model.ThemeMode(v)
		}
		pairs, _ := f.GetStringArray("benchmark")
		if len(pairs) > 0 {
			if s.CustomBenchmarks, err = applyBenchmarkPairs(s.CustomBenchmarks, pairs); err != nil {
				return err
			}
		}
		if reset, _ := f.GetBool("clear-benchmarks"); reset {
			s.CustomBenchmarks = nil
		}

		if err := env.Service.UpdateSettings(ctx, s); err != nil {
			return err
		}
		return writeYAML(cmd, s)
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, "cli", nil)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Store.ResetSettings(ctx); err != nil {
			return err
		}
		return writeYAML(cmd, model.DefaultSettings())
	},
}

func init() {
	f := settingsSetCmd.Flags()
	f.String("currency", "", "USD, EUR, GBP or CHF")
	f.String("lang", "", "de or en")
	f.String("theme", "", "light, dark or auto")
	f.StringArray("benchmark", nil, "benchmark override as pillar.field=value (repeatable)")
	f.Bool("clear-benchmarks", false, "remove all custom benchmarks")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// applyBenchmarkPairs merges "pillar.field=value" pairs into o. Keys use the
// JSON field names of model.Benchmarks.
func applyBenchmarkPairs(o *model.BenchmarkOverrides, pairs []string) (*model.BenchmarkOverrides, error) {
	doc := map[string]map[string]float64{}
	if o != nil {
		data, err := json.Marshal(o)
		if err != nil {
			return nil, eris.Wrap(err, "encode benchmarks")
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, eris.Wrap(err, "decode benchmarks")
		}
	}

	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, eris.Errorf("benchmark %q: want pillar.field=value", pair)
		}
		pillar, field, ok := strings.Cut(strings.TrimSpace(key), ".")
		if !ok || !knownBenchmark(pillar, field) {
			return nil, eris.Errorf("benchmark %q: unknown key", key)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "benchmark %q", key)
		}
		if doc[pillar] == nil {
			doc[pillar] = map[string]float64{}
		}
		doc[pillar][field] = v
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, eris.Wrap(err, "encode benchmarks")
	}
	var out model.BenchmarkOverrides
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, eris.Wrap(err, "decode benchmarks")
	}
	return &out, nil
}

var benchmarkKeys = map[string][]string{
	"database":    {"reactivationRate"},
	"reputation":  {"targetRating", "revenueIncreasePerStar"},
	"leadCapture": {"conversionRate"},
	"omnichannel": {"omnichannelConversionRate", "singleChannelConversionRate"},
	"website":     {"targetConversionRate"},
}

func knownBenchmark(pillar, field string) bool {
	for _, f := range benchmarkKeys[pillar] {
		if f == field {
			return true
		}
	}
	return false
}

func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode yaml")
	}
	return enc.Close()
}
