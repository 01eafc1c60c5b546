package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/trezcool/tutoria/core/listing"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db         *sql.DB
	listingSvc *listing.Service
	stdout     io.Writer
	createFunc func(name string) (io.WriteCloser, error) // export destination
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.stdout, "Usage:")
	fmt.Fprintln(cli.stdout, "  migrate COMMAND [ARGS...] - run a goose command (up, up-to, down, down-to, redo, reset, status, version, create, fix)")
	fmt.Fprintln(cli.stdout, "  export -tenant TENANT -resource RESOURCE [-search TEXT] [-sort FIELD] [-dir asc|desc] [-filters JSON] [-format csv|xlsx] [-o FILE] - export an admin table")
	fmt.Fprintf(cli.stdout, "  resources: %s\n", strings.Join(cli.listingSvc.Registry().Keys(), ", "))
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	exportCmd.SetOutput(cli.stdout)
	exportTenant := exportCmd.String("tenant", "", "The tenant whose rows are exported.")
	exportResource := exportCmd.String("resource", "", "The admin table to export.")
	exportSearch := exportCmd.String("search", "", "Free-text search.")
	exportSort := exportCmd.String("sort", "", "Sort field.")
	exportDir := exportCmd.String("dir", "", "Sort direction: asc or desc.")
	exportFilters := exportCmd.String("filters", "", "Filters, as a JSON object.")
	exportFormat := exportCmd.String("format", string(listing.FormatCSV), "Export format: csv or xlsx.")
	exportOut := exportCmd.String("o", "", "Output file. Defaults to the generated export filename.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			if err == flag.ErrHelp {
				return errHelp
			}
			return err
		}
		if *exportTenant == "" || *exportResource == "" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.export(exportOpts{
			tenantID: *exportTenant,
			resource: *exportResource,
			params: listing.RawParams{
				Search:    *exportSearch,
				SortField: *exportSort,
				SortDir:   *exportDir,
				Filters:   *exportFilters,
			},
			format: *exportFormat,
			output: *exportOut,
		})

	default:
		cli.printUsage()
		return errHelp
	}
}
