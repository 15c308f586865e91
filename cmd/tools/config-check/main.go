// cmd/tools/config-check/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"keyword-insights/internal/analysis/benchmark"
	"keyword-insights/internal/common/config"
)

func main() {
	path := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.LoadFromFile(*path)
	if err != nil {
		fmt.Printf("Config invalid: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Config OK: %s\n\n", *path)
	fmt.Printf("Site:      %s\n", cfg.GSC.SiteURL)
	fmt.Printf("Channels:  %v (last %d days, %d workers)\n",
		cfg.Analysis.Channels, cfg.Analysis.FetchDays, cfg.Analysis.Workers)

	s := cfg.Scoring
	fmt.Printf("Weights:   position=%.2f volume=%.2f ctrGap=%.2f trafficPotential=%.2f\n",
		s.Weights.Position, s.Weights.Volume, s.Weights.CTRGap, s.Weights.TrafficPotential)
	fmt.Printf("Filters:   minImpressions=%d maxPosition=%.0f brandTerms=%v\n",
		s.MinImpressions, s.MaxPosition, s.BrandTerms)
	fmt.Printf("Priority:  high>=%.0f medium>=%.0f\n", s.PriorityThresholds.High, s.PriorityThresholds.Medium)
	fmt.Println("Buckets:")
	for _, b := range s.PositionBuckets {
		fmt.Printf("  [%5.1f, %5.1f)  %s\n", b.Lower, b.Upper, b.Type)
	}

	curve := benchmark.Default()
	if p := cfg.Analysis.BenchmarkRegistryPath; p != "" {
		curve, err = benchmark.Load(p)
		if err != nil {
			fmt.Printf("Benchmark registry invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Curve:     custom registry %s\n", p)
	} else {
		fmt.Println("Curve:     built-in defaults")
	}
	for _, pos := range []float64{1, 3, 5, 10, 20, 50, 100} {
		fmt.Printf("  expectedCtr(%.0f) = %.4f\n", pos, curve.ExpectedCTR(pos))
	}

	fmt.Println("\nCollaborators:")
	fmt.Printf("  postgres:      %v\n", cfg.Database.Postgres.Enabled)
	fmt.Printf("  elasticsearch: %v\n", cfg.Database.Elasticsearch.Enabled)
	fmt.Printf("  redis cache:   %v\n", cfg.Database.Redis.Enabled)
	fmt.Printf("  csv export:    %v (%s)\n", cfg.Export.Enabled, cfg.Export.Directory)
	fmt.Printf("  email digest:  %v\n", cfg.Notifications.Email.Enabled)
	fmt.Printf("  sms alerts:    %v\n", cfg.Notifications.SMS.Enabled)
}
