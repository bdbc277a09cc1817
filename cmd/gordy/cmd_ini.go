package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/zostay/gordy/v2"
	"github.com/zostay/gordy/v2/internal/ini"
	"github.com/zostay/gordy/v2/parser"
	"github.com/zostay/gordy/v2/trace"
)

func newINICmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ini <file>",
		Short: "Parse an INI file and print it as YAML",
		Long: `
Parse an INI file and print it as YAML. The file is streamed through a fixed
read-ahead window, so no line may be longer than --buffer-size. Use - to read
standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runINI(cmd, args[0])
		},
	}

	cmd.Flags().Int("buffer-size", parser.DefaultBufferSize, "size of the read-ahead window in bytes")
	cmd.Flags().Bool("trace", false, "log every parser as it runs, at debug level")
	cmd.Flags().String("get", "", "print only the value of section.key, or key for the global section")

	return cmd
}

// openInput opens the named file, or standard input for "-".
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}
	return f, nil
}

// splitKey splits section.key at the last dot.
func splitKey(s string) (section, key string) {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

func (a *app) runINI(cmd *cobra.Command, name string) error {
	r, err := openInput(cmd, name)
	if err != nil {
		return err
	}
	defer r.Close()

	var opts []gordy.Option
	if a.conf.GetBool("trace") {
		opts = append(opts, gordy.WithObserver(trace.Zap(a.log)))
	}

	size := a.conf.GetInt("buffer-size")
	a.log.Debug("parsing", zap.String("input", name), zap.Int("buffer_size", size))

	doc, err := ini.Parse(parser.NewFileSize(r, size), opts...)
	if err != nil {
		if perr, ok := parser.AsParseError(err); ok {
			a.log.Debug("parse failed",
				zap.Stringer("expected", perr.Expected),
				zap.Int("frames", len(perr.Frames)),
			)
		}
		return errors.Wrapf(err, "parse %s", name)
	}

	a.log.Debug("parsed",
		zap.Int("global", len(doc.Global)),
		zap.Int("sections", len(doc.Sections)),
	)

	if key := a.conf.GetString("get"); key != "" {
		v, ok := doc.Get(splitKey(key))
		if !ok {
			return errors.Errorf("%s: no such key", key)
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return enc.Close()
}
