// Command verify-election loads a JSON election dump and checks it
// against the DRE-ip verification procedure, printing the result and
// setting the process exit code accordingly.
package main

import (
	"flag"
	"os"

	"github.com/vocdoni/dreip/dreip/dump"
	"github.com/vocdoni/dreip/group/p256"
	"github.com/vocdoni/dreip/log"
)

func main() {
	logLevel := flag.String("loglevel", "info", "log level (debug, info, warn, error)")
	flag.Parse()
	log.Init(*logLevel, "stderr", nil)

	args := flag.Args()
	if len(args) != 1 {
		log.Errorf("usage: verify-election <dump.json>")
		os.Exit(2)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		log.Errorf("reading dump: %v", err)
		os.Exit(1)
	}

	results, err := dump.Unmarshal(p256.New(), data)
	if err != nil {
		log.Errorf("decoding dump: %v", err)
		os.Exit(1)
	}

	log.Infow("election loaded",
		"confirmed", len(results.Confirmed),
		"audited", len(results.Audited),
		"candidates", len(results.Totals),
	)

	if err := results.Verify(); err != nil {
		log.Errorf("election failed to verify: %v", err)
		os.Exit(255)
	}

	log.Infof("election verified successfully")
}
