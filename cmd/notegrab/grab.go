package main

import (
	"fmt"

	"github.com/fwojciec/notegrab/crawl"
)

// skipURLWidth bounds the URLs echoed in skip lines.
const skipURLWidth = 80

// Run executes the grab command.
func (c *GrabCmd) Run(deps *Dependencies) error {
	result, err := deps.Grabber.GrabAll(deps.Ctx, c.URLs, func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressFailed:
			deps.Logger.Debug("progress", "completed", e.Completed, "total", e.Total, "url", e.URL, "err", e.Error)
		case crawl.ProgressCompleted, crawl.ProgressDuplicate, crawl.ProgressStored:
			deps.Logger.Debug("progress", "completed", e.Completed, "total", e.Total, "url", e.URL)
		}
	})
	if err != nil {
		if deps.Store != nil {
			_ = deps.Store.Abort()
		}
		return err
	}

	for _, o := range result.Outcomes {
		switch {
		case o.Err != nil:
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", crawl.TruncateURL(o.URL, skipURLWidth), errorMessage(o.Err))
		case o.Duplicate:
			fmt.Fprintf(deps.Stderr, "skip %s: duplicate note\n", crawl.TruncateURL(o.URL, skipURLWidth))
		case o.Stored:
			fmt.Fprintf(deps.Stderr, "skip %s: already stored\n", crawl.TruncateURL(o.URL, skipURLWidth))
		}
	}

	if deps.Store != nil {
		if result.Grabbed > 0 {
			if err := deps.Store.Commit(); err != nil {
				return fmt.Errorf("failed to publish notes: %w", err)
			}
		} else if err := deps.Store.Abort(); err != nil {
			return fmt.Errorf("failed to discard staged notes: %w", err)
		}
	}

	if err := writeRecords(deps.Stdout, c.Format, result.Records()); err != nil {
		return err
	}
	fmt.Fprintln(deps.Stderr, crawl.FormatSummary(result))

	if result.Grabbed == 0 && result.Failed > 0 {
		return fmt.Errorf("no notes grabbed")
	}
	return nil
}
