package player

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"tictac/experiments/metrics"
	"tictac/game"
)

// Human reads actions typed on in and writes prompts to out. Unparsable or
// illegal input is reported and asked for again.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (h *Human) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	parser, ok := state.(game.Parser)
	if !ok {
		return nil, metrics.SearchMetric{}, errors.Errorf("%T cannot parse typed actions", state)
	}

	for {
		fmt.Fprintf(h.out, "%s: ", parser.Prompt())
		if !h.in.Scan() {
			err := h.in.Err()
			if err == nil {
				err = io.EOF
			}
			return nil, metrics.SearchMetric{}, errors.Wrap(err, "reading action")
		}

		input := strings.TrimSpace(h.in.Text())
		if input == "" {
			continue
		}
		action, err := parser.ParseAction(input)
		if err != nil {
			log.Debug().Err(err).Str("input", input).Msg("unparsable action")
			fmt.Fprintf(h.out, "Invalid input: %v\n", err)
			continue
		}
		if !game.Contains(state, action) {
			fmt.Fprintf(h.out, "Illegal action: %s\n", action)
			continue
		}
		return action, metrics.SearchMetric{Algorithm: "human"}, nil
	}
}
