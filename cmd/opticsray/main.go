package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/lukaszgryglicki/opticsray/internal/opticsray"
)

func main() {
	// .env is optional, real environment wins
	_ = godotenv.Load()

	opticsray.Debug = os.Getenv("DEBUG") != ""
	opticsray.RAW = os.Getenv("RAW") != ""
	if w := os.Getenv("WORKERS"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil || n < 0 {
			fmt.Printf("Error: WORKERS must be a non-negative integer, got %q\n", w)
			os.Exit(1)
		}
		if n == 0 {
			n = runtime.NumCPU()
		}
		opticsray.ForceWorkers = n
	}
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := opticsray.DefaultConfigPath
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	if err := opticsray.Run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		if profile {
			pprof.StopCPUProfile()
		}
		os.Exit(1)
	}
}
