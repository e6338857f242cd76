// Command sceneconf checks scrollscene config files and prints the
// configuration they resolve to.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"scrollscene/internal/config"
)

func main() {
	var (
		inPath = flag.String("in", "", "Config file to read.")
		mode   = flag.String("mode", "check", "check|print|defaults.")
	)
	flag.Parse()

	switch strings.ToLower(*mode) {
	case "defaults":
		if err := writeConfig(os.Stdout, config.Default()); err != nil {
			fatalf("defaults: %v", err)
		}
	case "check", "print":
		if *inPath == "" {
			fatalf("usage: sceneconf -in scrollscene.toml [-mode check|print]\n       sceneconf -mode defaults")
		}
		cfg, err := config.Load(*inPath, true)
		if err != nil {
			fatalf("%v", err)
		}
		if *mode == "check" {
			fmt.Printf("%s: ok (%d sections)\n", *inPath, len(cfg.Sections))
			return
		}
		if err := writeConfig(os.Stdout, cfg); err != nil {
			fatalf("print: %v", err)
		}
	default:
		fatalf("unknown mode: %s", *mode)
	}
}

func writeConfig(w io.Writer, cfg config.Config) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(cfg)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
