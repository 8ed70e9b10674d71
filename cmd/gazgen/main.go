// Command gazgen generates data/cities.yaml from a GeoNames cities dump
// (tab-separated, e.g. cities15000.txt).
//
// Download the dump from https://download.geonames.org/export/dump/
// then run:
//
//	go run ./cmd/gazgen --input cities15000.txt --min-population 500000
//
// Output: data/cities.yaml (commit this file). Hand-added aliases such as
// airport codes are not in GeoNames; re-add them after regenerating.
package main

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Yogendra14/chatbot-ner/gazetteer"
	"github.com/Yogendra14/chatbot-ner/internal/textfold"
)

const (
	defaultInput   = "cities15000.txt"
	defaultOutput  = "data/cities.yaml"
	scannerBufSize = 1 << 20 // 1 MB; alternatenames can be long
	minAliasRunes  = 3
	maxAliasWords  = 6
)

// GeoNames "geoname" table columns used here.
const (
	colName           = 1
	colASCIIName      = 2
	colAlternateNames = 3
	colCountryCode    = 8
	colPopulation     = 14
	numColumns        = 19
)

type options struct {
	input         string
	output        string
	minPopulation int64
	maxAliases    int
	countries     []string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "gazgen",
		Short:        "Convert a GeoNames cities dump into a cityner gazetteer",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.input, "input", defaultInput, "path to the GeoNames TSV dump")
	cmd.Flags().StringVar(&opts.output, "output", defaultOutput, "output path for the gazetteer YAML (- for stdout)")
	cmd.Flags().Int64Var(&opts.minPopulation, "min-population", 100000, "skip cities smaller than this")
	cmd.Flags().IntVar(&opts.maxAliases, "max-aliases", 5, "alternate names kept per city")
	cmd.Flags().StringSliceVar(&opts.countries, "countries", nil, "ISO country codes to keep (default all)")
	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	in, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	cities, skipped, err := convert(in, opts)
	if cerr := in.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close input: %w", cerr)
	}
	if err != nil {
		return err
	}

	// Reject anything the gazetteer itself would refuse.
	if _, err := gazetteer.New(cities); err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	var out *os.File
	if opts.output != "-" {
		out, err = os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		w = out
	}
	if err := write(w, cities); err != nil {
		if out != nil {
			_ = out.Close()
		}
		return err
	}
	if out != nil {
		if err := out.Close(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Cities: %d (skipped %d rows)\n", len(cities), skipped)
	return nil
}

// convert reads GeoNames rows and returns the cities that pass the filters,
// most populous first.
func convert(r io.Reader, opts options) ([]gazetteer.City, int, error) {
	keep := make(map[string]struct{}, len(opts.countries))
	for _, c := range opts.countries {
		keep[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), scannerBufSize)

	var cities []gazetteer.City
	skipped := 0
	for scanner.Scan() {
		cols := strings.Split(scanner.Text(), "\t")
		if len(cols) < numColumns {
			skipped++
			continue
		}
		pop, err := strconv.ParseInt(cols[colPopulation], 10, 64)
		if err != nil || pop < opts.minPopulation {
			skipped++
			continue
		}
		country := cols[colCountryCode]
		if _, ok := keep[country]; len(keep) > 0 && !ok {
			skipped++
			continue
		}
		name := strings.TrimSpace(cols[colName])
		if name == "" {
			skipped++
			continue
		}
		cities = append(cities, gazetteer.City{
			Name:       name,
			Country:    country,
			Population: pop,
			Aliases:    aliases(name, cols[colASCIIName], cols[colAlternateNames], opts.maxAliases),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan input: %w", err)
	}

	slices.SortStableFunc(cities, func(a, b gazetteer.City) int {
		if c := cmp.Compare(b.Population, a.Population); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return cities, skipped, nil
}

// aliases picks up to limit usable alternate names, the ASCII name first.
// Names that fold to the same key as one already kept are dropped.
func aliases(name, asciiName, alternates string, limit int) []string {
	seen := map[string]struct{}{textfold.Key(name): {}}
	var out []string
	for _, alt := range append([]string{asciiName}, strings.Split(alternates, ",")...) {
		if len(out) == limit {
			break
		}
		alt = textfold.Lower(strings.TrimSpace(alt))
		if !isAcceptable(alt) {
			continue
		}
		key := textfold.Key(alt)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, alt)
	}
	return out
}

// isAcceptable reports whether a lowercased alternate name can be an alias:
// Latin letters and single spaces only, at least minAliasRunes runes, and at
// most maxAliasWords words. Other scripts never reach the detector, whose
// patterns are ASCII.
func isAcceptable(s string) bool {
	if utf8.RuneCountInString(s) < minAliasRunes || strings.Contains(s, "  ") {
		return false
	}
	if len(strings.Fields(s)) > maxAliasWords {
		return false
	}
	for _, r := range s {
		if r == ' ' || unicode.Is(unicode.Mn, r) {
			continue
		}
		if !unicode.IsLetter(r) || !unicode.Is(unicode.Latin, r) {
			return false
		}
	}
	return true
}

// write encodes cities as the gazetteer YAML layout.
func write(w io.Writer, cities []gazetteer.City) error {
	if _, err := io.WriteString(w, "# Generated by cmd/gazgen from GeoNames (CC BY 4.0).\n"); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	doc := struct {
		Cities []gazetteer.City `yaml:"cities"`
	}{Cities: cities}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}
