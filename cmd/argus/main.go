// Command argus analyzes one block's transactions for storage-access
// conflicts: which pairs of transactions touch the same contract slot, and
// how badly that contention would serialize a parallel executor.
package main

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/selcukyildirim/argus-core/internal/argerr"
	"github.com/selcukyildirim/argus-core/internal/conflict"
	"github.com/selcukyildirim/argus-core/internal/evmexec"
	"github.com/selcukyildirim/argus-core/internal/model"
	"github.com/selcukyildirim/argus-core/internal/prefetch"
	"github.com/selcukyildirim/argus-core/internal/report"
	"github.com/selcukyildirim/argus-core/internal/rpcsource"
)

var logger = log.Root().New("component", "cli")

func main() {
	app := &cli.App{
		Name:     "argus",
		Usage:    "parallel EVM conflict analyzer",
		Commands: []*cli.Command{analyzeCommand},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("argus failed", "err", err)
		os.Exit(exitCode(err))
	}
}

var analyzeCommand = &cli.Command{
	Name:  "analyze",
	Usage: "analyze a block for transaction conflicts",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "rpc", Aliases: []string{"r"}, EnvVars: []string{"ARGUS_RPC_URL"}, Usage: "JSON-RPC endpoint"},
		&cli.Uint64Flag{Name: "block", Aliases: []string{"b"}, Required: true, Usage: "block number to analyze"},
		&cli.BoolFlag{Name: "json", Usage: "print the summary, conflict rows and contention events as JSON"},
		&cli.BoolFlag{Name: "dry-run", Usage: "skip RPC state prefetch; simulate against empty state"},
		&cli.StringFlag{Name: "sink", Usage: `"ndjson" for stdout, "ndjson:/path" for a file`},
	},
	Action: runAnalyze,
}

func runAnalyze(c *cli.Context) error {
	ctx := c.Context
	block := c.Uint64("block")
	dryRun := c.Bool("dry-run")
	rpcURL := c.String("rpc")
	asJSON := c.Bool("json")
	sinkSpec := c.String("sink")

	if strings.TrimSpace(rpcURL) == "" {
		return argerr.InvalidInputf("--rpc is required")
	}

	t0 := time.Now()
	logger.Info("starting analysis", "block", block, "dry_run", dryRun)

	source, err := rpcsource.NewClient(rpcURL)
	if err != nil {
		return err
	}

	txs, err := source.GetBlockTransactions(ctx, block)
	if err != nil {
		return err
	}
	fetchTime := time.Since(t0)
	logger.Info("fetched block", "txs", len(txs), "elapsed_ms", fetchTime.Milliseconds())

	var lists []model.AccessList
	if dryRun {
		logger.Info("dry-run mode: simulating against empty state")
		lists, err = evmexec.SimulateBatchEmptyState(txs, block)
	} else {
		snap, perr := prefetch.New(source).Prefetch(ctx, block, txs)
		if perr != nil {
			return perr
		}
		lists, err = evmexec.SimulateBatch(snap, txs, block)
	}
	if err != nil {
		return err
	}
	logger.Info("simulation done", "lists", len(lists))

	graph := conflict.BuildGraph(lists)
	totalTime := time.Since(t0)
	logger.Info("analysis complete", "conflicts", graph.Len(), "elapsed_ms", totalTime.Milliseconds())

	rep := report.Build(block, lists, graph, fetchTime, totalTime)

	if sinkSpec != "" {
		return writeSink(sinkSpec, rep, graph)
	}
	if asJSON {
		return writeGraphJSON(rep, graph)
	}
	os.Stdout.WriteString(rep.Render(graph))
	return nil
}

// writeSink dispatches to the sink named by spec: "ndjson" writes to
// stdout, "ndjson:/path/to/file" writes to that file.
func writeSink(spec string, rep report.Report, graph model.ConflictGraph) error {
	kind, target, _ := strings.Cut(spec, ":")
	if kind != "ndjson" {
		return argerr.InvalidInputf("unknown sink %q", spec)
	}

	var w *report.NDJSONWriter
	if target == "" {
		w = report.Stdout()
	} else {
		f, err := os.Create(target)
		if err != nil {
			return argerr.Wrap(argerr.Internal, "open sink file", err)
		}
		defer f.Close()
		w = report.NewNDJSONWriter(f)
	}

	if err := w.WriteSummary(rep.Summary()); err != nil {
		return argerr.Wrap(argerr.Internal, "write summary row", err)
	}
	if err := w.WriteConflicts(rep.ConflictRows(graph)); err != nil {
		return argerr.Wrap(argerr.Internal, "write conflict rows", err)
	}
	if err := w.WriteContentionEvents(rep.ContentionEventRows(graph)); err != nil {
		return argerr.Wrap(argerr.Internal, "write contention rows", err)
	}

	rows, err := w.Finish()
	if err != nil {
		return argerr.Wrap(argerr.Internal, "flush sink", err)
	}
	logger.Info("sink written", "rows", rows)
	return nil
}

func writeGraphJSON(rep report.Report, graph model.ConflictGraph) error {
	out := struct {
		Summary          report.BlockSummaryRow      `json:"summary"`
		Conflicts        []report.ConflictRow        `json:"conflicts"`
		ContentionEvents []report.ContentionEventRow `json:"contention_events"`
	}{
		Summary:          rep.Summary(),
		Conflicts:        rep.ConflictRows(graph),
		ContentionEvents: rep.ContentionEventRows(graph),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exitCode(err error) int {
	var ae *argerr.Error
	if !errors.As(err, &ae) {
		return 1
	}
	switch ae.Kind {
	case argerr.InvalidInput:
		return 2
	default:
		return 1
	}
}
