// jcedump decodes a JCE-encoded payload and prints the value tree.
//
// The input comes from a file argument, from --hex, or from stdin. Use it
// to inspect captured payloads without writing any decoding code:
//
//	jcedump --hex "0a 0012 113456 0b"
//	jcedump payload.bin
//	cat payload.bin | jcedump
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/anirudhraja/jcelite"
	"github.com/anirudhraja/jcelite/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "jcedump: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var hexInput string
	var multi bool

	flagSet := pflag.NewFlagSet("jcedump", pflag.ContinueOnError)
	flagSet.StringVar(&hexInput, "hex", "", "decode this hex string instead of reading a file")
	flagSet.BoolVar(&multi, "multi", false, "decode back-to-back values until the input is exhausted")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	data, err := readInput(hexInput, flagSet.Args())
	if err != nil {
		return err
	}

	if !multi {
		v, err := jcelite.Decode(data)
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	}

	p := wire.NewParser(data)
	for !p.Done() {
		start := p.Pos()
		v, err := p.ReadValue()
		if err != nil {
			return err
		}
		fmt.Printf("@%d %s\n", start, v)
	}
	return nil
}

func readInput(hexInput string, args []string) ([]byte, error) {
	switch {
	case hexInput != "":
		clean := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\t' {
				return -1
			}
			return r
		}, hexInput)
		data, err := hex.DecodeString(clean)
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
		return data, nil
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		return data, nil
	case len(args) == 0:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("expected at most one input file, got %d", len(args))
	}
}
