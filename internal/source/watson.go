package source

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/sadopc/chronograph/internal/timelog"
)

// watsonFlagWords are the option words `watson log` accepts. Passthrough
// arguments let users type them without dashes; expansion adds them back.
var watsonFlagWords = map[string]bool{
	"c": true, "current": true,
	"C": true, "no-current": true,
	"r": true, "reverse": true,
	"R": true, "no-reverse": true,
	"f": true, "from": true,
	"t": true, "to": true,
	"y": true, "year": true,
	"m": true, "month": true,
	"l": true, "luna": true,
	"w": true, "week": true,
	"d": true, "day": true,
	"a": true, "all": true,
	"p": true, "project": true,
	"T": true, "tag": true,
	"ignore-project": true, "ignore-tag": true,
}

// PassthroughArgs prefixes known watson option words with dashes, leaving
// everything else alone.
func PassthroughArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		switch {
		case watsonFlagWords[a] && len(a) == 1:
			out = append(out, "-"+a)
		case watsonFlagWords[a]:
			out = append(out, "--"+a)
		default:
			out = append(out, a)
		}
	}
	return out
}

// WatsonCLI shells out to `watson log --csv` and decodes the output. Time
// bounds travel as watson's own --from/--to arguments, so Query.From and
// Query.To are ignored here.
type WatsonCLI struct {
	Bin string // watson binary, "watson" when empty
}

// Cmdline returns the exact command a query runs, for display.
func (w WatsonCLI) Cmdline(q Query) string {
	return strings.Join(append([]string{w.bin(), "log", "--csv"}, PassthroughArgs(q.WatsonArgs)...), " ")
}

func (w WatsonCLI) bin() string {
	if w.Bin == "" {
		return "watson"
	}
	return w.Bin
}

func (w WatsonCLI) Entries(ctx context.Context, q Query) ([]timelog.Entry, error) {
	args := append([]string{"log", "--csv"}, PassthroughArgs(q.WatsonArgs)...)
	slog.Debug("running watson", "bin", w.bin(), "args", args)

	cmd := exec.CommandContext(ctx, w.bin(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("watson log: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("watson log: %w", err)
	}

	entries, err := DecodeCSV(&stdout)
	if err != nil {
		return nil, fmt.Errorf("watson output: %w", err)
	}
	return entries, nil
}
