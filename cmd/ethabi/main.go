// Command ethabi is a thin cobra front-end over pkg/abi: encode/decode
// function calls, bare parameter lists, and logs from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/evmkit/ethabi/internal/appconfig"
	"github.com/evmkit/ethabi/internal/applog"
)

var (
	lenient  bool
	logLevel string
	log      *logrus.Entry
)

func main() {
	cfg := appconfig.Load()

	root := &cobra.Command{
		Use:   "ethabi",
		Short: "Ethereum contract ABI encode/decode toolkit",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logLevel
			if level == "" {
				level = cfg.LogLevel
			}
			log = applog.New("cli", level, cfg.LogFormat)
		},
	}
	root.PersistentFlags().BoolVar(&lenient, "lenient", cfg.Lenient, "use the lenient tokenizer for input values")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "logrus level: debug|info|warn|error (default info)")

	root.AddCommand(encodeCmd(), decodeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func fail(component, name string, err error) {
	log.WithFields(logrus.Fields{"component": component, "name": name}).Error(err)
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
