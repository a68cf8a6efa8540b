// xxh3sum prints the XXH3-64 digest of files or stdin, one line per input,
// in the style of the coreutils *sum tools.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/unkn0wn-root/xxh3"
)

func main() {
	var (
		seed = flag.Uint64("seed", 0, "64-bit seed")
	)
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("xxh3sum: ")

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}

	d := xxh3.NewSeed(*seed)
	exit := 0
	for _, name := range args {
		sum, err := hashOne(d, name, *seed)
		if err != nil {
			log.Print(err)
			exit = 1
			continue
		}
		fmt.Printf("%016x  %s\n", sum, name)
	}
	os.Exit(exit)
}

func hashOne(d *xxh3.Digest, name string, seed uint64) (uint64, error) {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		r = f
	}

	d.ResetSeed(seed)
	if _, err := io.Copy(d, r); err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return d.Sum64(), nil
}
