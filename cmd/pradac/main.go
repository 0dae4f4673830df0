// Command pradac compiles a Majority-Inverter Graph, described as JSON,
// into a DRAM row-instruction Program for a given PIM architecture.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/golang/glog"
	"gopkg.in/urfave/cli.v2"

	"github.com/prada-pim/prada/arch"
	"github.com/prada-pim/prada/compiler"
	"github.com/prada-pim/prada/cost"
	"github.com/prada-pim/prada/extractor"
	"github.com/prada-pim/prada/mig"
	"github.com/prada-pim/prada/stats"
)

// jsonNode is one entry of the --in file's "nodes" array. Exactly one of
// Const/Input/Maj should be set; which one selects the mig.Node kind the
// same way mapper.go's constructor switch in the teacher repo does.
type jsonNode struct {
	Id    uint32      `json:"id"`
	Const bool        `json:"const,omitempty"`
	Input *uint32     `json:"input,omitempty"`
	Maj   *jsonSignal `json:"maj,omitempty"`
}

type jsonSignal struct {
	A jsonEdge `json:"a"`
	B jsonEdge `json:"b"`
	C jsonEdge `json:"c"`
}

type jsonEdge struct {
	Node     uint32 `json:"node"`
	Inverted bool   `json:"inverted,omitempty"`
}

type jsonGraph struct {
	Nodes   []jsonNode `json:"nodes"`
	Outputs []jsonEdge `json:"outputs"`
}

func (e jsonEdge) toSignal() mig.Signal {
	return mig.Signal{Node: mig.Id(e.Node), Inverted: e.Inverted}
}

func buildGraph(jg jsonGraph) (*mig.Graph, error) {
	nodes := make(map[mig.Id]mig.Node, len(jg.Nodes))
	for _, n := range jg.Nodes {
		id := mig.Id(n.Id)
		switch {
		case n.Const:
			nodes[id] = mig.False{}
		case n.Input != nil:
			nodes[id] = mig.Input{K: *n.Input}
		case n.Maj != nil:
			nodes[id] = mig.Maj{
				A: n.Maj.A.toSignal(),
				B: n.Maj.B.toSignal(),
				C: n.Maj.C.toSignal(),
			}
		default:
			return nil, fmt.Errorf("cmd/pradac: node %d has neither const, input, nor maj set", n.Id)
		}
	}
	outputs := make([]mig.Signal, len(jg.Outputs))
	for i, e := range jg.Outputs {
		outputs[i] = e.toSignal()
	}
	return mig.NewGraph(nodes, outputs)
}

func main() {
	app := &cli.App{
		Name:    "pradac",
		Usage:   "compile a Majority-Inverter Graph into a PRADA DRAM instruction program",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "in",
				Aliases:  []string{"i"},
				Usage:    "path to a JSON MIG description (nodes + outputs)",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:  "subarrays",
				Usage: "number of DRAM subarrays in the target architecture",
				Value: 8,
			},
			&cli.Uint64Flag{
				Name:  "rows-per-subarray",
				Usage: "rows per subarray (must be a power of two)",
				Value: 16,
			},
			&cli.BoolFlag{
				Name:  "rewrite",
				Usage: "run the (not-yet-wired) e-graph rewrite stage before compiling",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log compiler phase information via glog",
			},
			&cli.BoolFlag{
				Name:  "print-program",
				Usage: "print the compiled instruction stream to stdout",
			},
		},
		Action: run,
	}
	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		glog.Fatalln(err)
	}
}

func run(c *cli.Context) error {
	raw, err := os.ReadFile(c.String("in"))
	if err != nil {
		return fmt.Errorf("cmd/pradac: reading %s: %w", c.String("in"), err)
	}
	var jg jsonGraph
	if err := json.Unmarshal(raw, &jg); err != nil {
		return fmt.Errorf("cmd/pradac: parsing %s: %w", c.String("in"), err)
	}
	network, err := buildGraph(jg)
	if err != nil {
		return err
	}

	a := arch.New(c.Uint64("subarrays"), c.Uint64("rows-per-subarray"))
	settings := compiler.Settings{
		Rewrite:      c.Bool("rewrite"),
		Verbose:      c.Bool("verbose"),
		PrintProgram: c.Bool("print-program"),
	}
	st := &stats.Statistics{}

	if settings.Rewrite {
		// The e-graph rewriter itself is explicitly out of scope (see
		// extractor package doc); --rewrite is accepted so the flag shape
		// matches spec.md §6 but currently only runs the no-op extraction
		// pass over the graph as given.
		start := time.Now()
		if _, err := extractor.Evaluate(network, cost.OfNode); err != nil && !errors.Is(err, extractor.ErrCycle) {
			return err
		}
		st.ExtractorTime = time.Since(start)
	}

	p, compileStats, err := compiler.Compile(a, network, settings)
	if err != nil {
		return fmt.Errorf("cmd/pradac: compile failed: %w", err)
	}
	st.InstructionCount = compileStats.InstructionCount
	st.CompilerTime = compileStats.CompilerTime

	if settings.PrintProgram {
		fmt.Print(p.String())
	}
	if settings.Verbose {
		glog.Infof("cmd/pradac: %s", st)
	}
	return nil
}
