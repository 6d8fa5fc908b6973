package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/service"
	"github.com/vaultpass/passgen-go/internal/shell"
)

// options are shared by every command.
type options struct {
	length  int
	numbers bool
	symbols bool
	source  string
	seed    uint64
}

func (o *options) register(cmd *kingpin.CmdClause) {
	cmd.Flag("length", "Password length.").Short('l').Default("8").IntVar(&o.length)
	cmd.Flag("numbers", "Include digits (0-9).").Short('n').BoolVar(&o.numbers)
	cmd.Flag("symbols", "Include symbols (!@#$%^&*()_+).").Short('s').BoolVar(&o.symbols)
	cmd.Flag("source", "Random source: crypto, math or chacha.").Default(crypto.SourceCrypto).EnumVar(&o.source,
		crypto.SourceCrypto, crypto.SourceMath, crypto.SourceChaCha)
	cmd.Flag("seed", "Seed for the chacha source.").Uint64Var(&o.seed)
}

func (o *options) generator() (*service.GeneratorService, error) {
	rng, err := crypto.NewSource(o.source, o.seed)
	if err != nil {
		return nil, err
	}
	return service.NewGeneratorService(rng, service.DefaultLimits(), nil), nil
}

func (o *options) config() crypto.Config {
	return crypto.Config{Length: o.length, Digits: o.numbers, Symbols: o.symbols}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	app := kingpin.New("passgen", "Generate random passwords.")
	app.Writer(stdout)
	app.Terminate(nil)

	var genOpts, shellOpts options
	var count int

	generateCmd := app.Command("generate", "Print one or more passwords.").Default()
	genOpts.register(generateCmd)
	generateCmd.Flag("count", "Number of passwords to generate.").Short('c').Default("1").IntVar(&count)

	shellCmd := app.Command("shell", "Adjust settings interactively; every change regenerates the password.")
	shellOpts.register(shellCmd)

	cmd, err := app.Parse(args)
	if err != nil {
		return err
	}

	switch cmd {
	case generateCmd.FullCommand():
		return generate(genOpts, count, stdout)
	case shellCmd.FullCommand():
		gen, err := shellOpts.generator()
		if err != nil {
			return err
		}
		sess, err := gen.NewSession("cli", shellOpts.config())
		if err != nil {
			return err
		}
		return shell.New(sess, stdin, stdout).Run()
	}
	return nil
}

func generate(o options, count int, w io.Writer) error {
	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}

	gen, err := o.generator()
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		password, err := gen.Password(o.config())
		if err != nil {
			return err
		}
		fmt.Fprintln(w, password)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "passgen: %v\n", err)
		os.Exit(1)
	}
}
