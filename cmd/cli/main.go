package main

import (
	"fmt"
	"os"
	"time"

	"github.com/de-tools/sales-pulse/pkg/runtime/terminal"
	"github.com/de-tools/sales-pulse/pkg/services/analysis"
	"github.com/de-tools/sales-pulse/pkg/services/config"
	"github.com/de-tools/sales-pulse/pkg/services/resolver"
	"github.com/de-tools/sales-pulse/pkg/store/salesdb"
	"github.com/de-tools/sales-pulse/pkg/store/salesdb/sales"
)

func main() {
	cfgPath := os.Getenv("SALES_PULSE_CONFIG")
	if cfgPath == "" {
		cfgPath = "sales-pulse.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	db, err := salesdb.NewDB(salesdb.Settings{DbPath: cfg.DBPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	salesStore, err := sales.NewStore(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	refTime := time.Now
	if cfg.ReferenceDate != "" {
		pinned, err := cfg.ReferenceTime(time.Time{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		refTime = func() time.Time { return pinned }
	}

	cli := terminal.NewCLI(terminal.Options{
		Resolver: resolver.New(),
		Engine:   analysis.NewEngine(salesStore),
		RefTime:  refTime,
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
