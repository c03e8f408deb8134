package main

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/coregx/rxparse"
	"github.com/coregx/rxparse/parser"
	"github.com/coregx/rxparse/stream"
)

var errNoMatch = errors.New("no match")

type matchGroup struct {
	Index int    `json:"index"`
	Name  string `json:"name,omitempty"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type matchResult struct {
	Outcome string        `json:"outcome"`
	End     int           `json:"end"`
	Groups  []*matchGroup `json:"groups,omitempty"`
}

func newMatchCmd() *cobra.Command {
	var partial bool
	var noDFA bool

	cmd := &cobra.Command{
		Use:   "match <pattern> [file]",
		Short: "Match an anchored pattern against the start of the input",
		Long: `Match an anchored pattern against the start of a file or stdin and
print the outcome and capture groups as JSON.

With --partial the input is treated as a prefix of a longer stream: a
match that reaches the end of the input, or a failure that more data could
turn into a match, reports "Incomplete".

Exits with a non-zero status unless the outcome is "Match".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := rxparse.DefaultConfig()
			config.EnableDFA = !noDFA
			m, err := rxparse.CompileWithConfig[[]byte](args[0], config)
			if err != nil {
				return err
			}

			r, err := openInput(cmd, args[1:])
			if err != nil {
				return err
			}
			defer r.Close()

			data, err := io.ReadAll(r)
			if err != nil {
				return errors.Wrap(err, "read input")
			}

			res := match(m, data, partial)

			enc := json.NewEncoder(cmd.OutOrStdout())
			if err := enc.Encode(res); err != nil {
				return errors.Wrap(err, "encode json")
			}
			if res.Outcome != rxparse.Match.String() {
				return errNoMatch
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&partial, "partial", false, "treat the input as incomplete")
	cmd.Flags().BoolVar(&noDFA, "no-dfa", false, "disable the lazy DFA and use the NFA engines only")

	return cmd
}

func match(m *rxparse.Matcher[[]byte], data []byte, partial bool) *matchResult {
	var in *stream.Input[[]byte]
	if partial {
		in = stream.NewPartial(data)
	} else {
		in = stream.New(data)
	}

	caps, err := m.Capture().ParseNext(in)
	switch {
	case errors.Is(err, parser.ErrIncomplete):
		return &matchResult{Outcome: rxparse.Incomplete.String()}
	case err != nil:
		return &matchResult{Outcome: rxparse.NoMatch.String()}
	}

	names := m.SubexpNames()
	res := &matchResult{Outcome: rxparse.Match.String(), End: int(in.Offset())}
	for i := 0; i < caps.Len(); i++ {
		start, end, ok := caps.Span(i)
		if !ok {
			res.Groups = append(res.Groups, nil)
			continue
		}
		g := &matchGroup{Index: i, Text: string(caps.Index(i)), Start: start, End: end}
		if i < len(names) {
			g.Name = names[i]
		}
		res.Groups = append(res.Groups, g)
	}
	return res
}
