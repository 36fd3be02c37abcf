package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ohamel-softwaresecure/souffle/internal/ast"
	"github.com/ohamel-softwaresecure/souffle/internal/config"
	"github.com/ohamel-softwaresecure/souffle/internal/diagnostics"
	"github.com/ohamel-softwaresecure/souffle/internal/pipeline"
)

var listScenarios bool

var checkCmd = &cobra.Command{
	Use:   "check [scenario]",
	Short: "run the semantic core's pipeline over a named scenario program",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&listScenarios, "list", false, "list the available scenarios and exit")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if listScenarios || len(args) == 0 {
		printScenarioList()
		return nil
	}

	s, ok := findScenario(args[0])
	if !ok {
		return fmt.Errorf("unknown scenario %q; use --list to see the available ones", args[0])
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	ctx := pipeline.NewContext(cfg, s.build())
	logger.Debug("running scenario", "name", s.name, "run_id", ctx.RunID)
	pipeline.Default().Run(ctx)

	colorize := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	printReport(ctx, colorize)

	if ctx.Report.HasErrors() {
		os.Exit(1)
	}
	return nil
}

func printScenarioList() {
	for _, s := range scenarios {
		fmt.Printf("  %-24s %s\n", s.name, s.description)
	}
}

func printReport(ctx *pipeline.Context, colorize bool) {
	red, yellow, bold, reset := "", "", "", ""
	if colorize {
		red, yellow, bold, reset = "\033[31m", "\033[33m", "\033[1m", "\033[0m"
	}

	entries := ctx.Report.Entries()
	if len(entries) == 0 {
		fmt.Println(bold + "no diagnostics" + reset)
	}
	for _, d := range entries {
		color := yellow
		if d.Kind == diagnostics.Error {
			color = red
		}
		fmt.Printf("%s%s%s: [%s] %s (%s)\n", color, d.Kind, reset, d.Code, d.Message, d.Location)
		for _, sec := range d.Secondary {
			fmt.Printf("    %s (%s)\n", sec.Message, sec.Location)
		}
	}

	if ctx.Aborted {
		fmt.Println(bold + "pipeline aborted after a pass reported an error" + reset)
		return
	}

	fmt.Println(bold + "argument types:" + reset)
	printArgumentTypes(ctx)
}

func printArgumentTypes(ctx *pipeline.Context) {
	type row struct {
		clauseID int
		arg      string
		types    string
	}
	var rows []row
	for cl, types := range ctx.ArgumentTypes {
		for arg, ts := range types {
			names := make([]string, 0, ts.Len())
			for _, n := range ts.Elements() {
				names = append(names, n.String())
			}
			sort.Strings(names)
			label := argumentLabel(arg)
			if label == "" {
				continue
			}
			rows = append(rows, row{cl.ID, label, "{" + strings.Join(names, ", ") + "}"})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].clauseID != rows[j].clauseID {
			return rows[i].clauseID < rows[j].clauseID
		}
		return rows[i].arg < rows[j].arg
	})
	for _, r := range rows {
		fmt.Printf("  clause %d: %s = %s\n", r.clauseID, r.arg, r.types)
	}
}

// argumentLabel names a variable occurrence for display; every other
// argument kind is omitted from the report since it carries no stable
// user-facing name.
func argumentLabel(arg ast.Argument) string {
	if v, ok := arg.(*ast.Variable); ok {
		return v.Name
	}
	return ""
}
