package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/alnah/go-md2tex"
)

// dirPermissions is rwxr-x---: owner full, group read+execute.
const dirPermissions = 0o750

// timeRounding is the precision of durations in verbose output.
const timeRounding = time.Millisecond

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Stats      md2tex.Stats
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently with a fixed number of workers.
// Results are returned in the order of files.
func convertBatch(ctx context.Context, conv Converter, files []FileToConvert, workers int, env *Environment) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := max(1, min(workers, len(files)))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], env)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, env *Environment) ConversionResult {
	start := env.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	in, err := os.Open(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("reading input: %w", err)
		result.Duration = env.Now().Sub(start)
		return result
	}
	defer func() { _ = in.Close() }()

	result.Stats, result.Err = convertToFile(ctx, conv, in, f.OutputPath)
	result.Duration = env.Now().Sub(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
// Returns the number of failed conversions.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v, %s)\n", r.InputPath, r.OutputPath, r.Duration.Round(timeRounding), formatStats(r.Stats))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
