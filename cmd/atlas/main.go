package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rmcsoft/atlas"
	"github.com/sirupsen/logrus"
)

type options struct {
	Verbose []bool             `short:"v" long:"verbose" description:"Show debug output"`
	Config  func(string) error `long:"config" description:"INI file with default option values" value-name:"FILE"`
}

var opts options

var parser = flags.NewParser(&opts, flags.Default)

func main() {
	opts.Config = func(fileName string) error {
		return flags.NewIniParser(parser).ParseFile(fileName)
	}

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// setupLogging is called by every command before it does any work.
func setupLogging() {
	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if len(opts.Verbose) > 0 {
		logger.SetLevel(logrus.DebugLevel)
	}
	atlas.SetLogger(logger)
}

type atlasOptions struct {
	Atlas string `short:"a" long:"atlas" description:"The atlas descriptor" value-name:"FILE" required:"true"`
}

func (o atlasOptions) load(loader atlas.PageLoader) (*atlas.TextureAtlas, error) {
	return atlas.LoadAtlas(o.Atlas, loader)
}
