// Command corvid is a UCI chess engine.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/op/go-logging"
)

var (
	buildVersion = "(devel)"

	verbose = flag.Bool("v", false, "log search debug info to stderr")
	version = flag.Bool("version", false, "print version and exit")
)

var log = logging.MustGetLogger("corvid")

func main() {
	flag.Parse()
	if *version {
		fmt.Printf("corvid %v, %v/%v\n", buildVersion, runtime.GOOS, runtime.GOARCH)
		return
	}

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	level := logging.ERROR
	if *verbose {
		level = logging.DEBUG
	}
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)

	uci := NewUCI()
	bio := bufio.NewReader(os.Stdin)
	for {
		line, _, err := bio.ReadLine()
		if err != nil {
			break
		}
		if err := uci.Execute(string(line)); err != nil {
			if err == errQuit {
				break
			}
			log.Errorf("line %q: %v", string(line), err)
		}
	}
}
