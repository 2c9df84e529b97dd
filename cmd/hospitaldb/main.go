package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/config"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/db"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/enrich"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/fetch"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/gazetteer"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/hospital"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/load"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/logging"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/resolve"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/web"
)

var verbose bool

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "hospitaldb",
		Short: "Moroccan health facility directory builder",
		Long:  `Builds a canonical directory of Moroccan places and health facilities from messy public data sources`,
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(createFetchCmd())
	rootCmd.AddCommand(createResolveCmd())
	rootCmd.AddCommand(createEnrichCmd())
	rootCmd.AddCommand(createLoadCmd())
	rootCmd.AddCommand(createVerifyCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// newLogger builds the process logger, honoring the --verbose flag.
func newLogger() *zap.Logger {
	logger, err := logging.New(verbose)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	return logger
}

func mustConnect() *db.Connection {
	conn, err := db.Connect(config.DBFromEnv())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return conn
}

func loadDictionary(path string) (*gazetteer.Dictionary, error) {
	if path == "" {
		return gazetteer.Default()
	}
	return gazetteer.LoadCSV(path)
}

func ensureParent(path string) error {
	if parent := filepath.Dir(path); parent != "." {
		return os.MkdirAll(parent, 0o755)
	}
	return nil
}

func writeDirectory(path string, dir *resolve.Directory) error {
	if err := ensureParent(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dir); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// createFetchCmd creates the OpenStreetMap fetch command
func createFetchCmd() *cobra.Command {
	var out string
	var endpoint string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch hospital records from OpenStreetMap",
		Long:  `Query the Overpass API for hospitals and clinics across Morocco and write the consolidated CSV`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Fetching hospitals from Overpass...")

			recs, err := fetch.Overpass(context.Background(), nil, endpoint)
			if err != nil {
				log.Fatalf("Overpass fetch failed: %v", err)
			}

			for i := range recs {
				recs[i] = hospital.Clean(recs[i])
			}
			kept := hospital.Dedupe(recs)

			if err := ensureParent(out); err != nil {
				log.Fatalf("Failed to create output directory: %v", err)
			}
			if err := fetch.WriteHospitalsCSV(out, kept); err != nil {
				log.Fatalf("Failed to write %s: %v", out, err)
			}

			fmt.Printf("\n=== Fetch Results ===\n")
			fmt.Printf("Fetched: %d\n", len(recs))
			fmt.Printf("After Dedup: %d\n", len(kept))
			fmt.Printf("Output: %s\n", out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "data/hospitals.csv", "Output CSV path")
	cmd.Flags().StringVar(&endpoint, "endpoint", fetch.DefaultOverpassEndpoint, "Overpass API endpoint")

	return cmd
}

// createResolveCmd creates the place resolution command
func createResolveCmd() *cobra.Command {
	var input, dict, out, label string
	var includeUnresolved, dryRun bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve raw place rows into the canonical directory",
		Long:  `Run the resolution pipeline over a government places CSV and load the resulting directory into the database`,
		Run: func(cmd *cobra.Command, args []string) {
			if input == "" {
				log.Fatalf("--input is required")
			}
			if label == "" {
				label = fmt.Sprintf("resolve-%d", time.Now().Unix())
			}

			logger := newLogger()
			defer logger.Sync()

			dictionary, err := loadDictionary(dict)
			if err != nil {
				log.Fatalf("Failed to load gazetteer: %v", err)
			}

			records, err := fetch.GovCSV(input)
			if err != nil {
				log.Fatalf("Failed to read %s: %v", input, err)
			}
			fmt.Printf("Loaded %d place rows from %s\n", len(records), input)

			result := resolve.New(dictionary, logger).Run(records)
			rep := result.Report

			fmt.Printf("\n=== Resolution Results ===\n")
			fmt.Printf("Run Label: %s\n", label)
			fmt.Printf("Input Rows: %d\n", rep.Input)
			fmt.Printf("Dropped: %d\n", rep.Dropped)
			fmt.Printf("Street Recovered: %d\n", rep.StreetRecovered)
			fmt.Printf("Exact Matches: %d\n", rep.ExactMatches)
			fmt.Printf("Phonetic Matches: %d\n", rep.PhoneticMatches)
			fmt.Printf("Edit-Distance Matches: %d\n", rep.EditMatches)
			fmt.Printf("Containment Deleted: %d\n", rep.ContainmentDeleted)
			fmt.Printf("Dedup Deleted: %d\n", rep.DedupDeleted)
			fmt.Printf("Resolved: %d\n", rep.Resolved)
			fmt.Printf("Unresolved: %d\n", rep.Unresolved)
			if survivors := rep.Resolved + rep.Unresolved; survivors > 0 {
				fmt.Printf("Coverage: %.2f%%\n", float64(rep.Resolved)/float64(survivors)*100)
			}

			if out != "" {
				if err := writeDirectory(out, result.Directory); err != nil {
					log.Fatalf("Failed to write directory: %v", err)
				}
				fmt.Printf("Directory written to %s\n", out)
			}

			if dryRun {
				fmt.Println("Dry run: skipping database load")
				return
			}

			conn := mustConnect()
			defer conn.Close()

			ctx := context.Background()
			if err := db.EnsureSchema(ctx, conn); err != nil {
				log.Fatalf("Failed to ensure schema: %v", err)
			}

			loader := load.New(conn, logger)
			inserted, err := loader.Places(ctx, result.Directory, includeUnresolved)
			if err != nil {
				log.Fatalf("Failed to load places: %v", err)
			}
			if err := loader.RecordRun(ctx, label, rep); err != nil {
				log.Printf("Failed to record run: %v", err)
			}
			fmt.Printf("Loaded %d places\n", inserted)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Path to the government places CSV")
	cmd.Flags().StringVar(&dict, "dict", "", "Gazetteer CSV (city,region,province); built-in set when empty")
	cmd.Flags().StringVar(&out, "out", "", "Write the directory as JSON to this path")
	cmd.Flags().StringVar(&label, "label", "", "Label for this resolution run")
	cmd.Flags().BoolVar(&includeUnresolved, "include-unresolved", false, "Stage unresolved rows with NULL region/province")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Skip the database load")

	return cmd
}

// createEnrichCmd creates the LLM enrichment command
func createEnrichCmd() *cobra.Command {
	var limit, batchSize int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Fill unresolved places using an LLM",
		Long:  `Send unresolved place rows to OpenRouter and apply the returned region/province fixes`,
		Run: func(cmd *cobra.Command, args []string) {
			logger := newLogger()
			defer logger.Sync()

			conn := mustConnect()
			defer conn.Close()

			ctx := context.Background()

			rows, err := enrich.FetchUnresolved(ctx, conn, limit)
			if err != nil {
				log.Fatalf("Failed to fetch unresolved places: %v", err)
			}
			if len(rows) == 0 {
				fmt.Println("No unresolved places found!")
				return
			}
			fmt.Printf("Found %d unresolved places\n", len(rows))

			cfg := config.EnrichFromEnv()
			if batchSize > 0 {
				cfg.BatchSize = batchSize
			}
			enricher, err := enrich.New(cfg, logger)
			if err != nil {
				log.Fatalf("Failed to create enricher: %v", err)
			}

			fixes, err := enricher.Suggest(ctx, rows)
			if err != nil {
				log.Printf("Enrichment incomplete: %v", err)
			}

			if dryRun {
				fmt.Printf("\n=== Suggested Fixes (dry run) ===\n")
				for _, fix := range fixes {
					fmt.Printf("  [%d] %s %s / %s / %s\n", fix.ID, fix.Action, fix.City, fix.Region, fix.Province)
				}
				return
			}

			applied, skipped, err := enrich.Apply(ctx, conn, fixes, logger)
			if err != nil {
				log.Fatalf("Failed to apply fixes: %v", err)
			}

			fmt.Printf("\n=== Enrichment Results ===\n")
			fmt.Printf("Unresolved: %d\n", len(rows))
			fmt.Printf("Fixes Returned: %d\n", len(fixes))
			fmt.Printf("Applied: %d\n", applied)
			fmt.Printf("Skipped: %d\n", skipped)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum unresolved rows to send (0 = all)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Rows per LLM request (default from environment)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print suggested fixes without applying them")

	return cmd
}

// createLoadCmd creates the load subcommand
func createLoadCmd() *cobra.Command {
	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Load facility data into the database",
		Long:  `Load hospital and supplier CSV files, attaching each row to its resolved place`,
	}

	loadCmd.AddCommand(createLoadHospitalsCmd())
	loadCmd.AddCommand(createLoadSuppliersCmd())

	return loadCmd
}

func createLoadHospitalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hospitals [filename]",
		Short: "Load the consolidated hospitals CSV",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			logger := newLogger()
			defer logger.Sync()

			recs, err := fetch.ReadHospitalsCSV(args[0])
			if err != nil {
				log.Fatalf("Failed to read hospitals: %v", err)
			}
			read := len(recs)

			for i := range recs {
				recs[i] = hospital.Clean(recs[i])
			}
			recs = hospital.Dedupe(recs)

			conn := mustConnect()
			defer conn.Close()

			ctx := context.Background()
			if err := db.EnsureSchema(ctx, conn); err != nil {
				log.Fatalf("Failed to ensure schema: %v", err)
			}

			loader := load.New(conn, logger)
			ids, err := loader.PlaceIDs(ctx)
			if err != nil {
				log.Fatalf("Failed to read place ids: %v", err)
			}
			assigned := hospital.AssignPlaces(recs, ids)

			inserted, err := loader.Hospitals(ctx, recs)
			if err != nil {
				log.Fatalf("Failed to load hospitals: %v", err)
			}

			fmt.Printf("\n=== Hospital Load Results ===\n")
			fmt.Printf("Rows Read: %d\n", read)
			fmt.Printf("After Dedup: %d\n", len(recs))
			fmt.Printf("Inserted: %d\n", inserted)
			fmt.Printf("With Place: %d\n", assigned)
		},
	}
}

func createLoadSuppliersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suppliers [filename]",
		Short: "Load the medical suppliers CSV",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			logger := newLogger()
			defer logger.Sync()

			rows, err := load.ReadSuppliersCSV(args[0])
			if err != nil {
				log.Fatalf("Failed to read suppliers: %v", err)
			}

			conn := mustConnect()
			defer conn.Close()

			ctx := context.Background()
			if err := db.EnsureSchema(ctx, conn); err != nil {
				log.Fatalf("Failed to ensure schema: %v", err)
			}

			loader := load.New(conn, logger)
			ids, err := loader.PlaceIDs(ctx)
			if err != nil {
				log.Fatalf("Failed to read place ids: %v", err)
			}

			inserted, err := loader.Suppliers(ctx, rows, ids)
			if err != nil {
				log.Fatalf("Failed to load suppliers: %v", err)
			}

			fmt.Printf("\n=== Supplier Load Results ===\n")
			fmt.Printf("Rows Read: %d\n", len(rows))
			fmt.Printf("Inserted: %d\n", inserted)
		},
	}
}

// createVerifyCmd creates a command that reports per-table row counts
func createVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Show row counts for every pipeline table",
		Run: func(cmd *cobra.Command, args []string) {
			logger := newLogger()
			defer logger.Sync()

			conn := mustConnect()
			defer conn.Close()

			counts, err := load.New(conn, logger).Verify(context.Background())
			if err != nil {
				log.Fatalf("Verification failed: %v", err)
			}

			fmt.Printf("\n=== Table Counts ===\n")
			fmt.Println("Table            | Rows")
			fmt.Println("-----------------|------")
			for _, table := range []string{"places", "hospitals", "suppliers", "resolution_runs"} {
				fmt.Printf("%-16s | %d\n", table, counts[table])
			}
		},
	}
}

// createServeCmd creates the review API server command
func createServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the review API server",
		Long:  `Serve the read-only places API used to review resolution results`,
		Run: func(cmd *cobra.Command, args []string) {
			logger := newLogger()
			defer logger.Sync()

			conn := mustConnect()
			defer conn.Close()

			server := web.NewServer(conn, addr, logger)
			if err := server.Start(); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")

	return cmd
}

// createPingCmd creates a command to test database connectivity
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			conn := mustConnect()
			defer conn.Close()

			fmt.Println("Database connection successful!")

			var count int
			err := conn.DB.QueryRow("SELECT COUNT(*) FROM places").Scan(&count)
			if err != nil {
				log.Printf("Error counting places: %v", err)
			} else {
				fmt.Printf("Places loaded: %d\n", count)
			}

			err = conn.DB.QueryRow("SELECT COUNT(*) FROM hospitals").Scan(&count)
			if err != nil {
				log.Printf("Error counting hospitals: %v", err)
			} else {
				fmt.Printf("Hospitals loaded: %d\n", count)
			}
		},
	}
}
