package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fwojciec/kbscrape"
	"github.com/fwojciec/kbscrape/crawl"
)

// status shows a spinner with scrape progress. It is silent unless writing
// to a file such as a terminal.
type status struct {
	spinner *spinner.Spinner
}

func newStatus(w io.Writer) *status {
	f, ok := w.(*os.File)
	if !ok {
		return &status{}
	}
	return &status{spinner: spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(f))}
}

// Start shows the spinner with msg.
func (s *status) Start(msg string) {
	if s == nil || s.spinner == nil {
		return
	}
	s.spinner.Suffix = " " + msg
	s.spinner.Start()
}

// Stop hides the spinner.
func (s *status) Stop() {
	if s == nil || s.spinner == nil {
		return
	}
	s.spinner.Stop()
}

// Progress updates the spinner with extraction progress.
func (s *status) Progress(p kbscrape.Progress) {
	if s == nil || s.spinner == nil {
		return
	}
	s.spinner.Lock()
	s.spinner.Suffix = fmt.Sprintf(" [%d/%d] %s", p.Completed, p.Total, crawl.TruncateURL(p.URL, 60))
	s.spinner.Unlock()
}
