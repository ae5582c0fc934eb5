package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/pokedex-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/pokedex-service/internal/app"
	"github.com/jsamuelsen/pokedex-service/internal/domain"
)

var (
	lookupJSON        bool
	lookupConcurrency int
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <name-or-number>...",
	Short: "Look up pokemon from the terminal",
	Long: `Fetch the full profile of one or more pokemon straight from the upstream
API and print it as tables, or as the JSON the HTTP API would return.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "Print JSON instead of tables")
	lookupCmd.Flags().IntVar(&lookupConcurrency, "concurrency", 1, "Lookups run at the same time")
}

// lookupResult is one creature's profile or the error that replaced it.
type lookupResult struct {
	Query   string
	Profile *domain.Profile
	Err     error
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(configDir, profile)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, os.Stderr)

	pokeapi, err := newPokeAPIClient(cfg, logger)
	if err != nil {
		return err
	}

	results := lookupProfiles(ctx, newPokemonService(pokeapi, logger), args, lookupConcurrency)

	if err := writeResults(cmd.OutOrStdout(), results, lookupJSON); err != nil {
		return err
	}

	return lookupError(results)
}

// lookupProfiles fetches every query, at most concurrency at a time.
// Results keep the order of queries.
func lookupProfiles(ctx context.Context, svc *app.PokemonService, queries []string, concurrency int) []lookupResult {
	fns := make([]func(context.Context) (*domain.Profile, error), len(queries))
	for i, q := range queries {
		fns[i] = func(ctx context.Context) (*domain.Profile, error) {
			return svc.Profile(ctx, q)
		}
	}

	partial := app.ParallelPartialLimit(ctx, concurrency, fns...)

	results := make([]lookupResult, len(queries))
	for i, r := range partial {
		results[i] = lookupResult{Query: queries[i], Profile: r.Value, Err: r.Err}
	}

	return results
}

// lookupError summarizes failed lookups; nil when all succeeded.
func lookupError(results []lookupResult) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	if failed == 0 {
		return nil
	}

	return fmt.Errorf("%d of %d lookups failed", failed, len(results))
}

func writeResults(w io.Writer, results []lookupResult, asJSON bool) error {
	if asJSON {
		return writeJSON(w, results)
	}

	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if err := writeTables(w, r); err != nil {
			return err
		}
	}

	return nil
}

// writeJSON prints the API's profile shape, or its error envelope, per query.
func writeJSON(w io.Writer, results []lookupResult) error {
	out := make([]any, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			_, envelope := dto.MapDomainError(r.Err)
			out = append(out, envelope)

			continue
		}

		out = append(out, dto.FromProfile(r.Profile))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func writeTables(w io.Writer, r lookupResult) error {
	if r.Err != nil {
		_, envelope := dto.MapDomainError(r.Err)
		_, err := fmt.Fprintf(w, "%s: %s\n", r.Query, envelope.Message)

		return err
	}

	p := dto.FromProfile(r.Profile)

	sprite := "none"
	if p.Sprite != nil {
		sprite = *p.Sprite
	}

	if _, err := fmt.Fprintf(w, "#%s %s (%s)  height %d  weight %d\nsprite: %s\n\n",
		p.Number, p.Name, p.Type, p.Height, p.Weight, sprite); err != nil {
		return err
	}

	moves := make([][]string, 0, len(p.Moves))
	for _, m := range p.Moves {
		moves = append(moves, []string{
			strconv.Itoa(m.Level), m.Name, m.Type, fmt.Sprint(m.Power), fmt.Sprint(m.Accuracy), fmt.Sprint(m.PP),
		})
	}

	if err := renderTable(w, []string{"Level", "Move", "Type", "Power", "Accuracy", "PP"}, moves); err != nil {
		return err
	}

	stats := make([][]string, 0, len(p.Stats))
	for _, s := range p.Stats {
		stats = append(stats, []string{s.Name, strconv.Itoa(s.BaseStat)})
	}

	if err := renderTable(w, []string{"Stat", "Base"}, stats); err != nil {
		return err
	}

	abilities := make([][]string, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		hidden := ""
		if a.IsHidden {
			hidden = "yes"
		}
		abilities = append(abilities, []string{a.Name, hidden})
	}

	return renderTable(w, []string{"Ability", "Hidden"}, abilities)
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	cols := make([]any, len(header))
	for i, h := range header {
		cols[i] = h
	}

	table := tablewriter.NewWriter(w)
	table.Header(cols...)

	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}

	return table.Render()
}
