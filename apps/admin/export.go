package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/trezcool/tutoria/core"
	"github.com/trezcool/tutoria/core/listing"
)

// cliUserID identifies exports run from the command line in export events.
const cliUserID = "admin-cli"

type exportOpts struct {
	tenantID string
	resource string
	params   listing.RawParams
	format   string
	output   string
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// export writes the whole (capped) export of opts.resource to opts.output.
func (cli *commandLine) export(opts exportOpts) error {
	format, err := listing.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	caller := core.Caller{
		TenantID: opts.tenantID,
		UserID:   cliUserID,
		Username: cliUserID,
		Roles:    []string{core.RoleAdminOwner},
	}
	file, err := cli.listingSvc.Export(context.Background(), opts.resource, caller, opts.params, format)
	if err != nil {
		return err
	}

	name := opts.output
	if name == "" {
		name = file.Filename
	}
	w, err := cli.createFunc(name)
	if err != nil {
		return err
	}
	if _, err = w.Write(file.Content); err != nil {
		_ = w.Close()
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cli.stdout, "exported %d of %d %s rows to %s\n", file.RowCount, file.TotalCount, opts.resource, name)
	if file.Truncated {
		fmt.Fprintf(cli.stdout, "warning: export truncated to %d rows\n", file.RowCount)
	}
	return nil
}
