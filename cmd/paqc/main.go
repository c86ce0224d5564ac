/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command paqc is the driver for every codec and peer transform in this
// module: `paqc ALGO MODE INPUT OUTPUT`.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aufdj/compression-algorithms/internal/runner"
)

var (
	verbose bool
	bench   bool
)

func main() {
	log := logrus.New()

	root := &cobra.Command{
		Use:           "paqc ALGO MODE INPUT OUTPUT",
		Short:         "compress or decompress a file with one of the suite's algorithms",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		// ALGO and MODE tokens start with '-', so flags are picked out by
		// hand instead of by cobra, which would reject them as unknown flags.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rest []string
			for _, a := range args {
				switch a {
				case "-v", "--verbose":
					verbose = true
				case "--bench":
					bench = true
				default:
					rest = append(rest, a)
				}
			}
			args = rest

			if bench {
				if len(args) != 1 {
					return cmd.Usage()
				}
				return runner.Bench(log, verbose, args[0])
			}

			if len(args) != 4 {
				return cmd.Usage()
			}

			if _, ok := runner.Algorithm(args[0]); !ok {
				return cmd.Usage()
			}
			if _, ok := runner.Mode(args[1]); !ok {
				return cmd.Usage()
			}

			return runner.Run(log, verbose, args[0], args[1], args[2], args[3])
		},
	}

	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "print per-run timing and byte counts")
	root.Flags().BoolVar(&bench, "bench", false, "run every algorithm over INPUT and report compressed size and elapsed time")
	root.SetOut(os.Stdout)

	// Missing, extra, or unrecognized arguments print usage and exit 0
	// rather than erroring (cmd.Usage returns nil), matching spec's driver
	// contract. Everything else is a fatal run failure.
	if err := root.Execute(); err != nil {
		log.WithError(err).Fatal("paqc: run failed")
	}
}
