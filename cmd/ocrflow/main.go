// @title OCRFlow API
// @version 1.0.0
// @description Normalizes document-parsing provider output (receipts, invoices, identity documents) into one schema.
// @description The raw provider response is returned alongside the normalized result.

// @contact.name OCRFlow Team
// @contact.url https://github.com/BaSui01/ocrflow

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/BaSui01/ocrflow/internal/telemetry"
)

// 构建时通过 -ldflags "-X main.Version=..." 注入
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// command 是一个子命令. run 的返回值即进程退出码.
type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string, stdout, stderr io.Writer) int
}

func commands() []command {
	return []command{
		{"serve", "Start the HTTP API and metrics listeners", runServe},
		{"parse", "Parse local files, one JSON result per line in input order", runParse},
		{"health", "Probe a running server (--ready for dependency checks)", runHealth},
		{"version", "Print build information", runVersion},
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	}
	for _, c := range commands() {
		if c.name == args[0] {
			return c.run(ctx, args[1:], stdout, stderr)
		}
	}
	fmt.Fprintf(stderr, "ocrflow: unknown command %q\n\n", args[0])
	usage(stderr)
	return 2
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "OCRFlow normalizes document-parsing provider output.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: ocrflow <command> [flags]")
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range commands() {
		fmt.Fprintf(tw, "  %s\t%s\n", c.name, c.summary)
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Run "ocrflow <command> -h" for the flags of a command.`)
}

func runVersion(_ context.Context, _ []string, stdout, _ io.Writer) int {
	tw := tabwriter.NewWriter(stdout, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "OCRFlow\t%s\n", Version)
	fmt.Fprintf(tw, "  build time:\t%s\n", BuildTime)
	fmt.Fprintf(tw, "  git commit:\t%s\n", GitCommit)
	fmt.Fprintf(tw, "  module:\t%s\n", telemetry.BuildVersion())
	_ = tw.Flush()
	return 0
}
