package main

import (
	"github.com/tliron/commonlog"

	"github.com/mgomes/escopo/config"

	_ "github.com/tliron/commonlog/simple"
)

// configureLogging applies flag values over the [log] table. The -v count
// adds to the configured verbosity.
func configureLogging(opts *globalOptions, settings *config.Settings) {
	verbosity := settings.Log.Verbosity + opts.verbose

	path := settings.Log.Path
	if opts.logFile != "" {
		path = opts.logFile
	}
	if path == "" {
		commonlog.Configure(verbosity, nil)
		return
	}
	commonlog.Configure(verbosity, &path)
}
