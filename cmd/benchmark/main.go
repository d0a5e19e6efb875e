package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/limaJavier/satmodeler/pkg/model"
	"github.com/limaJavier/satmodeler/pkg/modeler"
	"github.com/limaJavier/satmodeler/pkg/sat"
)

const MB float32 = 1024

type ResultType int

const (
	solved ResultType = iota
	unsatisfiable
	timeout
)

var resultTypes = map[ResultType]string{
	solved:        "solved",
	unsatisfiable: "unsatisfiable",
	timeout:       "timeout",
}

type TestMetadata struct {
	Name        string
	File        string
	Satisfiable bool
	Variables   int
	Constraints int
	CnfVars     uint64
	CnfClauses  uint64
}

type BenchmarkResult struct {
	Solver        string
	Test          TestMetadata
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Result        ResultType
}

func main() {
	executablePath := flag.String("bin", "../../bin/satmodeler", "Path to the satmodeler executable")
	modelDirectory := flag.String("models", "", "Directory with extra models; its \"satisfiable\" and \"unsatisfiable\" subdirectories are read")
	timeoutSeconds := flag.Int("timeout", sat.DefaultTimeoutSeconds, "Timeout per run in seconds")
	outFile := flag.String("out", "benchmark_results.csv", "Path to the CSV file with the results")
	flag.Parse()

	workDirectory, err := os.MkdirTemp("", "satmodeler-benchmark-")
	if err != nil {
		log.Fatalf("cannot create temporary directory: %v", err)
	}
	defer os.RemoveAll(workDirectory)

	tests := append(getExampleTests(workDirectory), getDirectoryTests(*modelDirectory)...)
	solvers := getSolvers()
	results := make([]BenchmarkResult, 0, len(tests)*len(solvers))

	for _, test := range tests {
		for _, solver := range solvers {
			fmt.Printf("Benchmarking test \"%v\" with solver \"%v\"\n", test.Name, solver)

			duration, maxMemory, cpuPercentage, result := measure(*executablePath, solver, *timeoutSeconds, test.File)
			if test.Satisfiable != (result == solved) && result != timeout {
				log.Printf("solver \"%v\" gave a wrong verdict on \"%v\": %v", solver, test.Name, resultTypes[result])
			}

			results = append(results, BenchmarkResult{
				Solver:        solver,
				Test:          test,
				Duration:      duration,
				Memory:        maxMemory,
				CpuPercentage: cpuPercentage,
				Result:        result,
			})
		}
	}

	toCsv(*outFile, results)
}

// getExampleTests writes the built-in models into directory
func getExampleTests(directory string) []TestMetadata {
	examples := modeler.NewModeler(sat.NewRegistry(sat.DefaultConfig())).Examples()
	return lo.Map(examples, func(example model.Example, _ int) TestMetadata {
		file := filepath.Join(directory, example.ID+".mzn")
		if err := os.WriteFile(file, []byte(example.Source), 0666); err != nil {
			log.Fatalf("cannot write model file: %v", err)
		}
		return newTestMetadata(example.ID, file, example.Source, example.Satisfiable)
	})
}

func getDirectoryTests(directory string) []TestMetadata {
	if directory == "" {
		return nil
	}

	tests := make([]TestMetadata, 0)
	for _, tuple := range lo.Zip2([]string{"satisfiable", "unsatisfiable"}, []bool{true, false}) {
		subdirectory, satisfiable := filepath.Join(directory, tuple.A), tuple.B
		testFiles, err := os.ReadDir(subdirectory)
		if err != nil {
			log.Fatalf("cannot read directory: %v", err)
		}

		for _, file := range testFiles {
			filename := filepath.Join(subdirectory, file.Name())
			source, err := os.ReadFile(filename)
			if err != nil {
				log.Fatalf("cannot read model file: %v", err)
			}
			tests = append(tests, newTestMetadata(filename, filename, string(source), satisfiable))
		}
	}
	return tests
}

func newTestMetadata(name, file, source string, satisfiable bool) TestMetadata {
	parsed := modeler.Parse(source)
	compiled, err := modeler.Compile(source)
	if err != nil {
		log.Fatalf("cannot compile model \"%v\": %v", name, err)
	}
	return TestMetadata{
		Name:        name,
		File:        file,
		Satisfiable: satisfiable,
		Variables:   len(parsed.Variables),
		Constraints: parsed.Constraints,
		CnfVars:     compiled.NumVariables,
		CnfClauses:  compiled.NumClauses,
	}
}

// getSolvers returns the keys of the solvers available on this machine
func getSolvers() []string {
	config, err := sat.LoadConfig(sat.ConfigPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	ready := lo.Filter(sat.NewRegistry(config).Solvers(), func(info sat.SolverInfo, _ int) bool { return info.Ready })
	return lo.Map(ready, func(info sat.SolverInfo, _ int) string { return info.Key })
}

func measure(executablePath, solver string, timeoutSeconds int, testFile string) (duration int64, maxMemory float32, cpuPercentage int64, result ResultType) {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "solve", "-solver", solver, "-timeout", fmt.Sprint(timeoutSeconds), testFile)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	switch cmd.ProcessState.ExitCode() {
	case 10:
		result = solved
	case 20:
		result = unsatisfiable
	case 124:
		result = timeout
	default:
		log.Fatalf("an error occurred during the execution of \"satmodeler\" at test \"%v\" using solver \"%v\": %v\n", testFile, solver, stdErr.String())
	}

	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return duration, maxMemory, cpuPercentage, result
}

func toCsv(path string, results []BenchmarkResult) {
	file, err := os.Create(path)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Solver", "Test", "Satisfiable", "Variables", "Constraints", "CNF Variables", "CNF Clauses", "Duration(ms)", "Memory(MB)", "CPU(%)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		if err := writer.Write(toRecord(result)); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func toRecord(result BenchmarkResult) []string {
	return []string{
		result.Solver,
		result.Test.Name,
		fmt.Sprintf("%v", result.Test.Satisfiable),
		fmt.Sprintf("%d", result.Test.Variables),
		fmt.Sprintf("%d", result.Test.Constraints),
		fmt.Sprintf("%d", result.Test.CnfVars),
		fmt.Sprintf("%d", result.Test.CnfClauses),
		fmt.Sprintf("%d", result.Duration),
		fmt.Sprintf("%.1f", result.Memory),
		fmt.Sprintf("%d", result.CpuPercentage),
		resultTypes[result.Result],
	}
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

// parseMemoryLine reads a size in KB and returns it in MB
func parseMemoryLine(line string) float32 {
	memoryStr := strings.TrimSpace(strings.Split(line, ":")[1])
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / MB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.TrimSpace(strings.Split(line, ":")[1])
	percentageStr = strings.TrimSuffix(percentageStr, "%")
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
