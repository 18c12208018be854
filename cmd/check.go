package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/recon"
	"github.com/google/subcommands"
)

type checkCmd struct {
	delim    string
	jsonPath string
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate source files without reconciling them" }
func (*checkCmd) Usage() string {
	return `rcs check [-d <delimiter>] [-jsonpath <path>] <file>...

  Validates each file as a reconciliation source and reports the number of
  records it holds. Files given twice (same name and size) are reported.

`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.delim, "d", "comma", "Delimiter of CSV files: comma, pipe or tab")
	f.StringVar(&c.jsonPath, "jsonpath", recon.DefaultJSONPath, "Rows of JSON files")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	d, err := recon.ParseDelimiter(c.delim)
	if err != nil {
		errorf("Error parsing flags: -d: %v", err)
		return subcommands.ExitUsageError
	}

	status := subcommands.ExitSuccess
	seen := make(map[recon.FileIdentity]string)
	for _, path := range f.Args() {
		n, err := c.check(path, d, seen)
		if err != nil {
			errorf("%s: %v", path, err)
			status = subcommands.ExitFailure
			continue
		}
		okf("%s: %d records", path, n)
	}
	return status
}

// check validates one file and returns its number of records.
func (c *checkCmd) check(path string, d recon.Delimiter, seen map[recon.FileIdentity]string) (int, error) {
	id, err := recon.IdentityOf(path)
	if err != nil {
		return 0, err
	}
	if other, ok := seen[id]; ok {
		warnf("Warning: %s is the same file as %s.", path, other)
	} else {
		seen[id] = path
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var records []recon.Record
	if recon.FormatOf(path) == recon.JSON {
		records, err = recon.ParseJSON(file, c.jsonPath)
	} else {
		records, err = recon.Parse(file, d)
	}
	return len(records), err
}
