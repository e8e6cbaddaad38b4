package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/icon-project/btp2/common/cli"
	"github.com/spf13/cobra"
)

var (
	version = "unknown"
	build   = "unknown"
)

func main() {
	rootCmd, rootVc := cli.NewCommand(nil, nil, "soap-sdk-cli", "SOAP-SDK CLI")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	cli.SetEnvKeyReplacer(rootVc, strings.NewReplacer(" ", "_", ".", "_", "-", "_"))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(rootCmd.Use, "version", version, build)
		},
	})

	var logoLines = []string{`
  ____   ___    _    ____        ____  ____  _  __
 / ___| / _ \  / \  |  _ \      / ___||  _ \| |/ /
 \___ \| | | |/ _ \ | |_) |_____\___ \| | | | ' /
  ___) | |_| / ___ \|  __/______|___) | |_| | . \
 |____/ \___/_/   \_\_|        |____/|____/|_|\_\
`,
	}
	NewServerCommand(rootCmd, rootVc, version, build, logoLines)
	NewCallCommand(rootCmd, rootVc)
	NewMonitorCommand(rootCmd, rootVc)

	genMdCmd := cli.NewGenerateMarkdownCommand(rootCmd, rootVc)
	genMdCmd.Hidden = true

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("%+v\n", err)
		os.Exit(1)
	}
}
