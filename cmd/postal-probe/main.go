//go:build cgo

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	postal "github.com/openvenues/gopostal/parser"
)

// Offline probe for tuning the street-token list: feed suspicious place
// strings through libpostal and see which component each token lands in.
// Strings that parse with road or house_number components are the ones
// the normalizer should treat as street rows.
func main() {
	var (
		address = flag.String("address", "", "Single place string to probe")
		file    = flag.String("file", "", "File with one place string per line")
		limit   = flag.Int("limit", 0, "Maximum lines to probe from the file (0 = all)")
	)
	flag.Parse()

	inputs := flag.Args()
	if *address != "" {
		inputs = append(inputs, *address)
	}
	if *file != "" {
		fromFile, err := readLines(*file, *limit)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *file, err)
		}
		inputs = append(inputs, fromFile...)
	}

	if len(inputs) == 0 {
		printUsage()
		return
	}

	streetRows := 0
	for i, input := range inputs {
		if i > 0 {
			fmt.Println()
		}
		if probe(input) {
			streetRows++
		}
	}

	fmt.Printf("\n=== Probe Summary ===\n")
	fmt.Printf("Probed: %d\n", len(inputs))
	fmt.Printf("Street Rows: %d\n", streetRows)
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  Probe a single string:")
	fmt.Println("    ./postal-probe -address=\"12 RUE IBN TACHFINE CASABLANCA\"")
	fmt.Println()
	fmt.Println("  Probe every line of a file:")
	fmt.Println("    ./postal-probe -file=unresolved_cities.txt -limit=100")
	fmt.Println()
	fmt.Println("  Probe arguments directly:")
	fmt.Println("    ./postal-probe \"AIN SEBAA\" \"HAY RIAD RABAT\"")
}

// probe parses one string and reports where libpostal put each token.
// Returns true when the string carries street-level components.
func probe(input string) bool {
	fmt.Printf("Input: %s\n", input)

	components := postal.ParseAddress(input)
	hasStreet := false
	city := ""
	for _, comp := range components {
		fmt.Printf("  %-15s: %s\n", comp.Label, comp.Value)
		switch comp.Label {
		case "road", "house_number", "house", "unit":
			hasStreet = true
		case "city":
			city = comp.Value
		}
	}

	switch {
	case hasStreet && city != "":
		fmt.Printf("  -> street row, recoverable city %q\n", city)
	case hasStreet:
		fmt.Println("  -> street row, no city component")
	case city != "":
		fmt.Printf("  -> plain city %q\n", city)
	default:
		fmt.Println("  -> no usable components")
	}

	return hasStreet
}

func readLines(path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if limit > 0 && len(lines) >= limit {
			break
		}
	}
	return lines, scanner.Err()
}
