// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"keyword-insights/internal/analysis/benchmark"
	"keyword-insights/pkg/registry"
)

var registryPath string

func main() {
	setCmd := flag.NewFlagSet("set", flag.ExitOnError)
	removeCmd := flag.NewFlagSet("remove", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	showCmd := flag.NewFlagSet("show", flag.ExitOnError)

	// Set command flags
	posSet := setCmd.Int("position", 0, "Anchor position (1-based search ranking)")
	ctrSet := setCmd.Float64("ctr", 0, "Expected CTR at that position (0..1]")
	source := setCmd.String("source", "", "Data source label (e.g., advanced-web-ranking-2026-07)")
	setCmd.StringVar(&registryPath, "path", "configs/benchmark-registry.json", "Path to registry file")

	// Remove command flags
	posRemove := removeCmd.Int("position", 0, "Anchor position to remove")
	removeCmd.StringVar(&registryPath, "path", "configs/benchmark-registry.json", "Path to registry file")

	validateCmd.StringVar(&registryPath, "path", "configs/benchmark-registry.json", "Path to registry file")
	showCmd.StringVar(&registryPath, "path", "configs/benchmark-registry.json", "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "set":
		setCmd.Parse(os.Args[2:])
		if *posSet < 1 || *ctrSet <= 0 {
			fmt.Println("Error: position >= 1 and ctr > 0 are required for set.")
			setCmd.Usage()
			os.Exit(1)
		}
		if err := setAnchor(*posSet, *ctrSet, *source); err != nil {
			fmt.Printf("Error setting anchor: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Set anchor: position %d -> ctr %s\n", *posSet, strconv.FormatFloat(*ctrSet, 'f', -1, 64))

	case "remove":
		removeCmd.Parse(os.Args[2:])
		if *posRemove < 1 {
			fmt.Println("Error: position is required for remove.")
			removeCmd.Usage()
			os.Exit(1)
		}
		if err := removeAnchor(*posRemove); err != nil {
			fmt.Printf("Error removing anchor: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed anchor at position %d\n", *posRemove)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateRegistry(); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "show":
		showCmd.Parse(os.Args[2:])
		if err := showRegistry(); err != nil {
			fmt.Printf("Error reading registry: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func setAnchor(position int, ctr float64, source string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		// If file doesn't exist, create new registry
		if os.IsNotExist(err) {
			reg = &registry.BenchmarkRegistry{
				Version: "1.0.0",
				Anchors: []registry.Anchor{},
			}
		} else {
			return fmt.Errorf("failed to load registry: %w", err)
		}
	}

	updated := false
	for i := range reg.Anchors {
		if reg.Anchors[i].Position == position {
			reg.Anchors[i].CTR = ctr
			updated = true
			break
		}
	}
	if !updated {
		reg.Anchors = append(reg.Anchors, registry.Anchor{Position: position, CTR: ctr})
	}

	sort.Slice(reg.Anchors, func(i, j int) bool {
		return reg.Anchors[i].Position < reg.Anchors[j].Position
	})

	if source != "" {
		reg.Source = source
	}
	reg.LastUpdated = time.Now().Format(time.RFC3339)

	// Reject edits that break the curve before they reach disk
	if _, err := benchmark.New(reg.Anchors); err != nil {
		return fmt.Errorf("resulting curve invalid: %w", err)
	}

	return registry.SaveRegistry(reg, registryPath)
}

func removeAnchor(position int) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	kept := reg.Anchors[:0]
	found := false
	for _, a := range reg.Anchors {
		if a.Position == position {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return fmt.Errorf("no anchor at position %d", position)
	}
	reg.Anchors = kept
	reg.LastUpdated = time.Now().Format(time.RFC3339)

	if _, err := benchmark.New(reg.Anchors); err != nil {
		return fmt.Errorf("resulting curve invalid: %w", err)
	}

	return registry.SaveRegistry(reg, registryPath)
}

func validateRegistry() error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if _, err := benchmark.New(reg.Anchors); err != nil {
		return err
	}

	fmt.Printf("Registry validation passed. Found %d anchors.\n", len(reg.Anchors))
	return nil
}

func showRegistry() error {
	curve, err := benchmark.Load(registryPath)
	if err != nil {
		return err
	}

	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return err
	}

	fmt.Printf("Registry: %s (version %s, source %q, updated %s)\n",
		registryPath, reg.Version, reg.Source, reg.LastUpdated)
	fmt.Println("Position  Anchor CTR   Interpolated midpoint")
	for i, a := range reg.Anchors {
		mid := ""
		if i+1 < len(reg.Anchors) {
			p := (float64(a.Position) + float64(reg.Anchors[i+1].Position)) / 2
			mid = fmt.Sprintf("%.1f -> %.4f", p, curve.ExpectedCTR(p))
		}
		fmt.Printf("%8d  %10.4f   %s\n", a.Position, a.CTR, mid)
	}
	return nil
}

func help() {
	fmt.Println(`Benchmark registry updater

Usage:
  registry-updater set      -position N -ctr F [-source LABEL] [-path FILE]
  registry-updater remove   -position N [-path FILE]
  registry-updater validate [-path FILE]
  registry-updater show     [-path FILE]

The registry anchors the expected-CTR curve used to score keyword
opportunities. Edits are validated against the curve rules (strictly
decreasing CTR, unique positions) before being written.`)
}
