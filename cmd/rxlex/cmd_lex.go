package main

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/coregx/rxparse/lexer"
	"github.com/coregx/rxparse/stream"
)

func newLexCmd() *cobra.Command {
	var rulesPath string
	cfg := stream.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "lex --rules <rules.yaml> [file]",
		Short: "Tokenize a file or stdin and print one JSON token per line",
		Long: `Tokenize a file or stdin with the rules in a YAML file.

The input is read in chunks of --buffer-size bytes. A token is printed only
once more input could not change it: a rule whose match touches the end of
the buffer, or that fails on data more input could complete, waits for the
next chunk. Rules that cannot start with the next byte are passed over
without waiting. A rule whose pattern can match the empty string is never
passed over this way.

At most --max-buffered unconsumed bytes are held while a token is
undecided; past that the command fails instead of reading further.

Rules file format:

  rules:
    - name: space
      pattern: '\s+'
      skip: true
    - name: keyword
      literals: [if, else]
    - name: ident
      pattern: '[a-z]+'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lx, err := loadLexer(rulesPath)
			if err != nil {
				return err
			}

			r, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer r.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			err = lx.Run(cmd.Context(), r, cfg, func(tok lexer.Token) error {
				return enc.Encode(tok)
			})
			return errors.Wrap(err, "lex")
		},
	}

	cmd.Flags().StringVarP(&rulesPath, "rules", "r", "", "path to the YAML rules file")
	cmd.Flags().IntVar(&cfg.BufferSize, "buffer-size", cfg.BufferSize, "bytes requested per read")
	cmd.Flags().IntVar(&cfg.MaxBuffered, "max-buffered", cfg.MaxBuffered, "maximum unconsumed bytes held while a token is undecided (-1 for unlimited)")
	_ = cmd.MarkFlagRequired("rules")

	return cmd
}

func loadLexer(path string) (*lexer.Lexer, error) {
	rules, err := lexer.LoadRules(path)
	if err != nil {
		return nil, err
	}
	lx, err := lexer.New(rules)
	if err != nil {
		return nil, errors.Wrapf(err, "rules file %s", path)
	}
	log.Infof("loaded %d rules from %s", len(rules.Rules), path)
	return lx, nil
}
