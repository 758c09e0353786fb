package terminal

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/sales-pulse/pkg/runtime/terminal/commands"
	"github.com/de-tools/sales-pulse/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	resolver commands.Resolver
	engine   commands.Engine
	refTime  func() time.Time
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Resolver commands.Resolver
	Engine   commands.Engine
	RefTime  func() time.Time
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.RefTime == nil {
		opts.RefTime = time.Now
	}

	cli := &CLI{
		resolver: opts.Resolver,
		engine:   opts.Engine,
		refTime:  opts.RefTime,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales-pulse",
		Short: "Sales period-comparison analysis tool",
	}

	cmd.AddCommand(commands.NewAskCmd(cli.resolver, cli.engine, cli.reporter, cli.refTime))
	cmd.AddCommand(commands.NewDrillCmd(cli.engine, cli.reporter))
	cmd.AddCommand(commands.NewDimensionsCmd(cli.engine))

	return cmd
}
