package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/eugenenazirov/pagination/internal/paginator"
	"github.com/eugenenazirov/pagination/internal/render"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitInvalid = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app := kingpin.New("paginate", "Computes the page indicators of a pagination control")
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)
	app.Terminate(func(int) {})

	opts := paginator.DefaultOptions()
	app.Flag("current-page", "Page to mark active").Short('p').Default("1").IntVar(&opts.CurrentPage)
	app.Flag("total-items", "Number of items being paginated").Short('n').Default("1").IntVar(&opts.TotalItems)
	app.Flag("items-per-page", "Page size").Default("1").IntVar(&opts.ItemsPerPage)
	app.Flag("siblings", "Pages shown on each side of the current page").Default("1").IntVar(&opts.SiblingsCount)
	app.Flag("boundaries", "Pages pinned at each end").Default("1").IntVar(&opts.Boundaries)
	asJSON := app.Flag("json", "Print the computed layout as JSON").Bool()
	ascii := app.Flag("ascii", "Use plain ASCII glyphs").Bool()

	if _, err := app.Parse(args); err != nil {
		fmt.Fprintf(stderr, "paginate: %v\n", err)
		return exitInvalid
	}

	res, err := paginator.Compute(opts)
	if err != nil {
		fmt.Fprintf(stderr, "paginate: %v\n", err)
		if errors.Is(err, paginator.ErrInvalidArgument) {
			return exitInvalid
		}
		return exitFailure
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(stderr, "paginate: encode result: %v\n", err)
			return exitFailure
		}
		return exitOK
	}

	fmt.Fprintln(stdout, render.Bar(res, render.Style{ASCII: *ascii}))
	return exitOK
}
