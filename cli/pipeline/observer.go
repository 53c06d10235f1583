package pipeline

import (
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/brainsum/themekit/cli/taskgraph"
	"github.com/fatih/color"
)

var (
	taskColor     = color.New(color.FgCyan).SprintFunc()
	durationColor = color.New(color.FgMagenta).SprintFunc()
	failedColor   = color.New(color.FgRed, color.Bold).SprintFunc()
)

// formatDuration prints durations as "350 ms" or "1.2 s".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1f s", d.Seconds())
}

// logObserver logs the task lifecycle.
type logObserver struct{}

func (logObserver) TaskStarted(name string) {
	log.Infof("Starting '%s'...", taskColor(name))
}

func (logObserver) TaskFinished(name string, result taskgraph.TaskResult) {
	if result.State == taskgraph.TaskFailed {
		log.Errorf("'%s' errored after %s: %s", failedColor(name),
			durationColor(formatDuration(result.Duration)), result.Err)
		return
	}
	log.Infof("Finished '%s' after %s", taskColor(name),
		durationColor(formatDuration(result.Duration)))
}

func (logObserver) TaskSkipped(name string) {
	log.Warnf("Skipped '%s'", taskColor(name))
}
