// Package cli contains the jsonapi-resolve command line interface.
package cli

import (
	"fmt"
	"io"
	stdlog "log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/neuronlabs/includes"
	"github.com/neuronlabs/includes/codec"
	"github.com/neuronlabs/includes/config"
	"github.com/neuronlabs/includes/errors"
	"github.com/neuronlabs/includes/log"
	"github.com/neuronlabs/includes/resolver"
)

var (
	// ErrCLI is the error classification for the command line interface.
	ErrCLI = errors.New("cli")
	// ErrInput is the error classification for the failures on reading the input document.
	ErrInput = errors.Wrap(ErrCLI, "input")
	// ErrDocument is the error classification for the documents that contain the JSON:API errors.
	ErrDocument = errors.Wrap(ErrCLI, "document")
)

// flag name to config key bindings.
var flagKeys = map[string]string{
	"miss-policy":      "resolver.miss_policy",
	"max-depth":        "resolver.max_depth",
	"require-included": "resolver.require_included",
	"naming":           "resolver.naming_convention",
	"strict":           "resolver.strict_unmarshal",
	"use-number":       "resolver.use_number",
	"log-level":        "log_level",
}

// command is the state shared by the root command and its sub commands.
type command struct {
	v   *viper.Viper
	in  io.Reader
	out io.Writer
	err io.Writer

	cfg      *config.Config
	resolver *resolver.Resolver
}

// NewRootCmd creates the jsonapi-resolve root command that reads the documents from 'in',
// writes the results into 'out' and the logs into 'errOut'.
func NewRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &command{v: config.NewViper(), in: in, out: out, err: errOut}

	rootCmd := &cobra.Command{
		Use:   "jsonapi-resolve [file]",
		Short: "Resolves the JSON:API relationships into nested objects.",
		Long: `Reads the JSON:API document from the 'file' or the standard input and replaces
every relationship reference of the primary data with the matching included resource.
The attributes of the resolved resources are flattened to the top level.`,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: c.preRun,
		RunE:              c.runResolve,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	rootCmd.SetOut(errOut)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "path to the config file")
	flags.StringP("miss-policy", "m", "default", "policy for the references not found in the included resources. Possible values: default, identifier, null, drop")
	flags.Int("max-depth", 0, "maximum nesting level of the resolved objects, 0 means no limit")
	flags.Bool("require-included", false, "skip the relationships when the document has no included resources")
	flags.StringP("naming", "n", "", "naming convention of the flattened keys. Possible values: camel, lowercamel, snake, kebab")
	flags.Bool("strict", false, "reject the documents that doesn't match the JSON:API structure")
	flags.Bool("use-number", false, "decode the numbers without the float conversion")
	flags.StringP("log-level", "l", "", "logging level. Possible values: debug3, debug2, debug, info, warning, error, critical")
	flags.BoolP("pretty", "p", false, "indent the output")
	flags.Bool("data-only", false, "write only the resolved primary data")

	for name, key := range flagKeys {
		if err := c.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(c.newRelatedCmd())
	return rootCmd
}

// Execute creates and runs the root command on the standard streams.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (c *command) preRun(cmd *cobra.Command, args []string) error {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if configFile != "" {
		c.v.SetConfigFile(configFile)
		if err = c.v.ReadInConfig(); err != nil {
			return errors.WrapDet(err, config.ErrRead).WithDetailf("reading config file: '%s' failed", configFile)
		}
	}

	if c.cfg, err = config.ReadViper(c.v); err != nil {
		return err
	}
	if err = c.setLogger(); err != nil {
		return err
	}
	log.Debugf("Resolver config: %+v", *c.cfg.Resolver)

	c.resolver, err = includes.New(c.cfg)
	return err
}

func (c *command) setLogger() error {
	if c.cfg.LogLevel == "" {
		return nil
	}
	log.New(c.err, "", stdlog.Ltime|stdlog.Lshortfile)
	return log.SetLevel(log.ParseLevel(c.cfg.LogLevel))
}

func (c *command) runResolve(cmd *cobra.Command, args []string) error {
	doc, err := c.readDocument(args)
	if err != nil {
		return err
	}
	resolved := c.resolver.ResolveDocument(doc)

	dataOnly, err := cmd.Flags().GetBool("data-only")
	if err != nil {
		return err
	}
	if dataOnly {
		return c.write(cmd, resolved.Data)
	}
	return c.write(cmd, resolved)
}

// readDocument decodes the document from the file provided in the 'args' or the command input.
func (c *command) readDocument(args []string) (*codec.Document, error) {
	in := c.in
	name := "stdin"
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, errors.WrapDet(err, ErrInput).WithDetailf("opening file: '%s' failed", args[0])
		}
		defer f.Close()
		in, name = f, args[0]
	}
	log.Debug2f("Reading document from: %s", name)

	doc, err := codec.Decode(in, &codec.UnmarshalOptions{
		StrictUnmarshal: c.cfg.Resolver.StrictUnmarshal,
		UseNumber:       c.cfg.Resolver.UseNumber,
	})
	if err != nil {
		return nil, err
	}
	if docErr := doc.Err(); docErr != nil {
		return nil, errors.WrapDet(docErr, ErrDocument).WithDetailf("document from: '%s' contains errors", name)
	}
	return doc, nil
}

func (c *command) write(cmd *cobra.Command, v interface{}) error {
	pretty, err := cmd.Flags().GetBool("pretty")
	if err != nil {
		return err
	}
	return codec.Encode(c.out, v, pretty)
}
