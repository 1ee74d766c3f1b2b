package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"sheetnorm/internal"
	"sheetnorm/internal/combine"
	"sheetnorm/internal/config"
	"sheetnorm/internal/fileio"
	"sheetnorm/internal/pipeline"
	"sheetnorm/internal/schema"
	"sheetnorm/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "standardize":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input spreadsheet (.xlsx/.xls/.csv/.html)")
		out := fs.String("out", cfg.OutputDir, "output directory")
		sheet := fs.String("sheet", "", "workbook sheet name (default: first)")
		threshold := fs.Int("threshold", cfg.MatchThreshold, "minimum match score 0-100")
		manufacturer := fs.String("manufacturer", cfg.ManufacturerValue, "manufacturer value to annotate")
		real := fs.Bool("real", cfg.AddManufacturerReal, "append Manufacturer_real column")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		cfg.MatchThreshold = *threshold
		cfg.ManufacturerValue = pipeline.ExpandManufacturer(strings.TrimSpace(*manufacturer))
		cfg.AddManufacturerReal = *real

		svc, db := makeService(cfg)
		defer db.Close()
		res, err := svc.ProcessFile(*input, *sheet, *out, nil)
		must(err)
		printReport(res.Result.Report)
		fmt.Printf("saved %s\n", res.Output)

	case "batch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", "", "folder with spreadsheets")
		out := fs.String("out", "", "output directory (default: <dir>/standardized_output)")
		threshold := fs.Int("threshold", cfg.MatchThreshold, "minimum match score 0-100")
		manufacturer := fs.String("manufacturer", cfg.ManufacturerValue, "manufacturer value to annotate")
		real := fs.Bool("real", cfg.AddManufacturerReal, "append Manufacturer_real column")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*dir) == "" {
			must(fmt.Errorf("--dir is required"))
		}
		outDir := *out
		if outDir == "" {
			outDir = filepath.Join(*dir, "standardized_output")
		}

		cfg.MatchThreshold = *threshold
		cfg.ManufacturerValue = pipeline.ExpandManufacturer(strings.TrimSpace(*manufacturer))
		cfg.AddManufacturerReal = *real

		svc, db := makeService(cfg)
		defer db.Close()
		done, failed, err := svc.ProcessFolder(*dir, outDir, nil)
		must(err)
		fmt.Printf("processed %d file(s) into %s\n", len(done), outDir)
		for _, f := range failed {
			fmt.Printf("failed %s: %v\n", f.File, f.Err)
		}

	case "combine":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		inputs := fs.String("inputs", "", "comma-separated input files")
		out := fs.String("out", "combined.xlsx", "output file")
		method := fs.String("method", "union", "union|intersect")
		source := fs.Bool("source", false, "add Source_File column")
		tags := fs.Bool("tags", false, "add empty BG/MAG/Category columns")
		dedupe := fs.Bool("dedupe", false, "drop duplicate rows")
		_ = fs.Parse(os.Args[2:])
		paths := splitList(*inputs)
		if len(paths) == 0 {
			must(fmt.Errorf("--inputs is required"))
		}

		loaded := []combine.Input{}
		for _, path := range paths {
			t, err := fileio.ReadTable(path)
			if err != nil {
				fmt.Printf("skipping %s: %v\n", filepath.Base(path), err)
				continue
			}
			loaded = append(loaded, combine.Input{Name: filepath.Base(path), Table: t})
		}
		combined, log, err := combine.Tables(loaded, combine.Options{
			Method:           *method,
			AddSourceColumn:  *source,
			AddTagColumns:    *tags,
			RemoveDuplicates: *dedupe,
		})
		must(err)
		for _, line := range log {
			fmt.Println(line)
		}
		must(fileio.WriteTable(combined, *out))
		fmt.Printf("saved %s\n", *out)

	case "history":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max runs to show")
		_ = fs.Parse(os.Args[2:])

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		runs, err := db.ListRuns(*limit)
		must(err)

		w := table.NewWriter()
		w.SetOutputMirror(os.Stdout)
		w.AppendHeader(table.Row{"ID", "File", "Status", "Mapped", "Unmapped", "Conflicts", "Error", "At"})
		for _, run := range runs {
			w.AppendRow(table.Row{run.ID, run.File, run.Status, run.MappedCount, run.UnmappedCount, run.ConflictCount, run.Error, run.CreatedAt})
		}
		w.Render()

	case "scaffold":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		base := fs.String("base", ".", "directory to create manufacturer folders in")
		_ = fs.Parse(os.Args[2:])
		names := make([]string, 0, len(pipeline.ManufacturerShortNames))
		for _, name := range pipeline.ManufacturerShortNames {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			dir := filepath.Join(*base, name)
			must(os.MkdirAll(dir, 0o755))
			fmt.Printf("created %s\n", dir)
		}

	case "schema:list":
		s := loadSchema(cfg)
		w := table.NewWriter()
		w.SetOutputMirror(os.Stdout)
		w.AppendHeader(table.Row{"Canonical", "Synonyms"})
		for _, e := range s.Entries() {
			w.AppendRow(table.Row{e.Name, strings.Join(e.Synonyms, ", ")})
		}
		w.Render()

	default:
		usage()
		os.Exit(1)
	}
}

func makeService(cfg config.Config) (*pipeline.ProcessingService, *storage.DB) {
	db, err := storage.Open(cfg.DBPath)
	must(err)
	svc, err := pipeline.NewProcessingService(db, cfg, loadSchema(cfg))
	must(err)
	return svc, db
}

func loadSchema(cfg config.Config) *schema.Schema {
	if cfg.SchemaPath != "" {
		s, err := schema.LoadFile(cfg.SchemaPath)
		must(err)
		return s
	}
	s, err := schema.Default()
	must(err)
	return s
}

func printReport(report internal.Report) {
	w := table.NewWriter()
	w.SetOutputMirror(os.Stdout)
	w.AppendHeader(table.Row{"Original", "Canonical", "Score", "Method"})
	for _, e := range report.Entries {
		canonical := ""
		if e.Mapped() {
			canonical = *e.Canonical
		}
		w.AppendRow(table.Row{e.Original, canonical, e.Score, string(e.Method)})
	}
	w.Render()

	fmt.Printf("mapped %d, unmapped %d\n", report.MappedCount, len(report.Unmapped))
	for _, warn := range report.Ambiguities {
		fmt.Printf("ambiguous %q: chose %q over %s (score %d)\n", warn.Original, warn.Chosen, strings.Join(warn.Contenders, ", "), warn.Score)
	}
	for _, conflict := range report.Conflicts {
		fmt.Printf("merge conflict in %q row %d: %q\n", conflict.Canonical, conflict.Row, conflict.Result)
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func usage() {
	fmt.Println(`usage: sheetnorm <command> [flags]

commands:
  standardize  map one spreadsheet's columns onto the canonical schema
  batch        standardize every spreadsheet in a folder
  combine      stack multiple spreadsheets into one file
  history      list recorded runs
  scaffold     create manufacturer folder tree
  schema:list  print the canonical schema`)
}
