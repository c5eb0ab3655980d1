// Command api_tool is the local replay tool for the engine: given a
// seed and a recorded action log as one JSON document, it replays each
// action through engine.Init/Execute exactly as a live caller would
// (spec §8.6 "replay... reproduces the original game byte-for-byte")
// and renders the resulting state, or the state at an intermediate
// step, to the terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rackforge/hexdominion/internal/engine"
	"github.com/rackforge/hexdominion/internal/logger"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// replayDocument is the on-disk shape api_tool reads: a seed plus the
// ordered action log engine.Execute was originally called with. This
// is deliberately not GameData — GameData is a snapshot of state,
// while replay reproduces state by re-running Execute, the mechanism
// undo/redo already rely on (see DESIGN.md "Undo via replay, not patch
// application").
type replayDocument struct {
	Seed        string                `json:"seed"`
	PlayerCount int                   `json:"player_count"`
	Actions     []engine.ActionRecord `json:"actions"`
}

func main() {
	cmd := &cli.Command{
		Name:                  "api_tool",
		Usage:                 "replay and inspect recorded hexdominion games",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "debug, info, warn, or error (mirrors TM_LOG_LEVEL)",
			},
		},
		Commands: []*cli.Command{
			replayCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("api_tool: "+err.Error()))
		os.Exit(1)
	}
}

// replayCommand implements `api_tool replay <file> [step]`: <file> is
// a replayDocument, and the optional [step] stops the replay after
// that many actions (0 or omitted means "play the whole log").
func replayCommand() *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "replay a recorded action log and render the resulting state",
		ArgsUsage: "<file> [step]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			level := cmd.String("log-level")
			if err := logger.Init(&level); err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer logger.Sync()

			path := cmd.Args().Get(0)
			if path == "" {
				return fmt.Errorf("missing required <file> argument")
			}
			step := cmd.Args().Get(1)

			doc, err := loadReplayDocument(path)
			if err != nil {
				return err
			}

			stopAt := len(doc.Actions)
			if step != "" {
				n, err := parseStep(step)
				if err != nil {
					return err
				}
				if n > 0 && n < stopAt {
					stopAt = n
				}
			}

			g, failedAt, execErr := replay(doc, stopAt)
			fmt.Println(renderBanner(g, doc, stopAt, failedAt))
			if execErr != nil {
				fmt.Println(errorStyle.Render(fmt.Sprintf("action %d failed: %v", failedAt, execErr)))
			}
			fmt.Println(renderScoreboard(g))
			fmt.Println(renderLog(g))
			return nil
		},
	}
}

func loadReplayDocument(path string) (*replayDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc replayDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc.Seed == "" {
		return nil, fmt.Errorf("%s: missing seed", path)
	}
	if doc.PlayerCount < 1 {
		return nil, fmt.Errorf("%s: player_count must be at least 1", path)
	}
	return &doc, nil
}

func parseStep(step string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(step, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid step %q: must be a non-negative integer", step)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid step %q: must be a non-negative integer", step)
	}
	return n, nil
}

// replay reproduces doc from init(seed) up to the stopAt-th action
// (exclusive), reporting the index and error of the first action that
// fails, if any. It does not abort the whole tool on an IllegalAction —
// spec §6 execute() "logs an error and leaves state unchanged" on
// failure, so replay stops there and renders what it has.
func replay(doc *replayDocument, stopAt int) (g *engine.Game, failedAt int, execErr error) {
	g = engine.Init(doc.PlayerCount, doc.Seed)

	bar := progressbar.NewOptions(stopAt,
		progressbar.OptionSetDescription("replaying"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	for i := 0; i < stopAt; i++ {
		rec := doc.Actions[i]
		if err := g.Execute(rec.Action, rec.Player); err != nil {
			_ = bar.Finish()
			return g, i, err
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return g, stopAt, nil
}
