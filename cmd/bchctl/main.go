/*------------------------------------------------------------------
 *
 * Purpose:	Command-line front end for the bch package: encode or decode
 *		a file against a configurable (m, t, primitive-polynomial)
 *		codec, optionally loaded from a named profile file.
 *
 *---------------------------------------------------------------*/
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/kb3mpl-digital/gobch/bch"
)

// profile is one named entry in a -profiles YAML file, letting an operator
// pin down (m, t, primitive polynomial) once instead of respecifying them
// on every invocation.
type profile struct {
	M        int    `yaml:"m"`
	T        int    `yaml:"t"`
	PrimPoly uint32 `yaml:"prim_poly"`
}

func loadProfiles(path string) (map[string]profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var profiles map[string]profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return profiles, nil
}

func main() {
	var (
		m          = pflag.IntP("m", "m", 8, "Galois-field exponent (5..15).")
		t          = pflag.IntP("t", "t", 4, "designed error-correction capability.")
		primPoly   = pflag.Uint32("prim-poly", 0, "primitive polynomial override (0 = default for m).")
		profileArg = pflag.StringP("profile", "p", "", "named profile to load from -profiles.")
		profiles   = pflag.String("profiles", "", "YAML file of named codec profiles.")
		decode     = pflag.Bool("decode", false, "decode instead of encode.")
		verbose    = pflag.BoolP("verbose", "v", false, "enable debug logging.")
		help       = pflag.Bool("help", false, "display help text.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - encode/decode a file against a BCH codec\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nUsage: %s [OPTIONS] INPUT OUTPUT\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if *profileArg != "" {
		if *profiles == "" {
			log.Fatal("-profile requires -profiles")
		}
		loaded, err := loadProfiles(*profiles)
		if err != nil {
			log.Fatal("loading profiles", "err", err)
		}
		p, ok := loaded[*profileArg]
		if !ok {
			log.Fatal("no such profile", "name", *profileArg)
		}
		*m, *t, *primPoly = p.M, p.T, p.PrimPoly
		log.Debug("loaded profile", "name", *profileArg, "m", *m, "t", *t)
	}

	if len(pflag.Args()) != 2 {
		fmt.Fprintf(os.Stderr, "Exactly two arguments required (INPUT OUTPUT) - got %v\n", pflag.Args())
		os.Exit(1)
	}
	inPath, outPath := pflag.Arg(0), pflag.Arg(1)

	var opts []bch.Option
	if *primPoly != 0 {
		opts = append(opts, bch.WithPrimitivePolynomial(*primPoly))
	}
	codec, err := bch.New(*m, *t, opts...)
	if err != nil {
		log.Fatal("constructing codec", "m", *m, "t", *t, "err", err)
	}
	log.Info("codec ready", "m", codec.M, "t", codec.T, "n", codec.N, "ecc_bits", codec.ECCBits, "ecc_bytes", codec.ECCBytes)

	in, err := os.ReadFile(inPath)
	if err != nil {
		log.Fatal("reading input", "path", inPath, "err", err)
	}

	if *decode {
		runDecode(codec, in, outPath)
		return
	}
	runEncode(codec, in, outPath)
}

func runEncode(codec *bch.Codec, in []byte, outPath string) {
	if len(in) > codec.MaxDataBytes() {
		log.Fatal("input too large for this codec", "len", len(in), "max", codec.MaxDataBytes())
	}
	ecc := make([]byte, codec.ECCBytes)
	if err := codec.Encode(in, ecc); err != nil {
		log.Fatal("encoding", "err", err)
	}
	if err := os.WriteFile(outPath, append(in, ecc...), 0o644); err != nil {
		log.Fatal("writing output", "path", outPath, "err", err)
	}
	log.Info("encoded", "data_bytes", len(in), "ecc_bytes", len(ecc))
}

func runDecode(codec *bch.Codec, in []byte, outPath string) {
	if len(in) < codec.ECCBytes {
		log.Fatal("input shorter than ecc_bytes", "len", len(in), "ecc_bytes", codec.ECCBytes)
	}
	data := in[:len(in)-codec.ECCBytes]
	recvECC := in[len(in)-codec.ECCBytes:]

	errloc := make([]int, codec.T)
	n, err := codec.Decode(bch.DecodeInput{Data: data, RecvECC: recvECC}, errloc)
	if err != nil {
		log.Fatal("decoding", "err", err)
	}
	log.Info("decoded", "errors_found", n, "positions", errloc[:n])

	corrected := make([]byte, len(data))
	copy(corrected, data)
	bch.Correct(corrected, errloc, n)

	if err := os.WriteFile(outPath, corrected, 0o644); err != nil {
		log.Fatal("writing output", "path", outPath, "err", err)
	}
}
