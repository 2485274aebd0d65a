package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/urizennnn/gh-email-finder/aggregate"
)

// maxReposShown caps the repositories listed per row; the rest collapse
// into a "+N more" suffix. Display only, the underlying set is intact.
const maxReposShown = 3

type Presenter struct {
	out io.Writer
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// Render prints the summary line and the result table. Entries are
// expected already sorted; Render never reorders them.
func (p *Presenter) Render(username string, entries []aggregate.EmailEntry) {
	fmt.Fprintf(p.out, "Found %d unique email address(es) for %s\n", len(entries), username)

	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Email", "Occurrences", "Repositories"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, e := range entries {
		table.Append([]string{e.Address, strconv.Itoa(e.Count), formatRepos(e)})
	}
	table.Render()
}

func formatRepos(e aggregate.EmailEntry) string {
	names := e.Repositories()
	shown := names
	if len(shown) > maxReposShown {
		shown = shown[:maxReposShown]
	}
	parts := make([]string, 0, len(shown)+1)
	for _, name := range shown {
		parts = append(parts, fmt.Sprintf("%s (%d)", name, e.Repos[name]))
	}
	if rest := len(names) - len(shown); rest > 0 {
		parts = append(parts, fmt.Sprintf("+%d more", rest))
	}
	return strings.Join(parts, ", ")
}
