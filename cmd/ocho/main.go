package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"ocho/internal"
	"ocho/pkg/term"
)

const usage = "ocho [-hz rate] [-keep-going] <CHIP-8 program>"

var hzvar float64
var keepgoingvar bool

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.Float64Var(&hzvar, "hz", 60, "Cycle rate in cycles per second (also the timer rate)")
	flag.BoolVar(&keepgoingvar, "keep-going", false, "Continue past stack faults instead of halting")
	flag.Parse()
}

func ocho() int {
	args := flag.Args()

	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	cfg := internal.DefaultConfig
	cfg.CycleRate = hzvar
	cfg.HaltOnFault = !keepgoingvar

	vm := internal.New(&cfg)
	if err := vm.LoadFile(args[0]); err != nil {
		log.Println(err)
		return 1
	}

	io := term.NewIO()
	if err := io.Setup(); err != nil {
		log.Println(err)
		return 1
	}
	defer io.Restore()

	if err := vm.Run(io); err != nil {
		io.Restore()
		log.Println(err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(ocho())
}
