package main

import (
	"context"
	"os"

	"github.com/icon-project/btp2/common/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/soapkit/soap-sdk/api"
)

func NewMonitorCommand(parentCmd *cobra.Command, parentVc *viper.Viper) (*cobra.Command, *viper.Viper) {
	rootCmd, rootVc := cli.NewCommand(parentCmd, parentVc, "monitor", "Monitor dispatch events")
	var (
		c api.Client
	)
	rootCmd.PersistentPreRunE = ClientPersistentPreRunE(rootVc, &c)
	AddClientRequiredFlags(rootCmd)
	cli.BindPFlags(rootVc, rootCmd.PersistentFlags())

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		cli.OnInterrupt(cancel)
		return c.MonitorDispatch(ctx, func(e api.DispatchEvent) error {
			return cli.JsonPrettyPrintln(os.Stdout, e)
		})
	}
	return rootCmd, rootVc
}
