package httpimport

import (
	"github.com/pcj/mobyprogress"
)

// DownloadProgress returns an OnLog sink that renders download messages on
// the given progress output.
func DownloadProgress(output mobyprogress.Output) func(message string) {
	return func(message string) {
		output.WriteProgress(mobyprogress.Progress{
			ID:      "download",
			Action:  "download",
			Message: message,
		})
	}
}
