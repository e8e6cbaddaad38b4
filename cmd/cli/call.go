package main

import (
	"io"
	"os"
	"strings"

	"github.com/icon-project/btp2/common/cli"
	"github.com/icon-project/btp2/common/errors"
	"github.com/icon-project/btp2/common/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/soapkit/soap-sdk/api"
	"github.com/soapkit/soap-sdk/soap"
)

func ClientPersistentPreRunE(vc *viper.Viper, c *api.Client) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := cli.ValidateFlagsWithViper(vc, cmd.Flags()); err != nil {
			return err
		}
		l := log.GlobalLogger()
		if lv, err := log.ParseLevel(vc.GetString("log_level")); err != nil {
			return errors.Wrapf(err, "fail to parseLevel log_level err:%s", err.Error())
		} else {
			l.SetLevel(lv)
		}
		if lv, err := log.ParseLevel(vc.GetString("console_level")); err != nil {
			return errors.Wrapf(err, "fail to parseLevel console_level err:%s", err.Error())
		} else {
			l.SetConsoleLevel(lv)
		}
		dumpLogLevel, err := log.ParseLevel(vc.GetString("dump_log_level"))
		if err != nil {
			return errors.Wrapf(err, "fail to parseLevel dump_log_level err:%s", err.Error())
		} else {
			dumpLogLevel = soap.EnsureTransportLogLevel(dumpLogLevel)
		}
		*c = *api.NewClient(
			vc.GetString("url"),
			dumpLogLevel,
			l)
		return nil
	}
}

func AddClientRequiredFlags(c *cobra.Command) {
	pFlags := c.PersistentFlags()
	pFlags.String("url", "http://localhost:8080", "server address")
	pFlags.String("log_level", "debug", "Global log level (trace,debug,info,warn,error,fatal,panic)")
	pFlags.String("console_level", "trace", "Console log level (trace,debug,info,warn,error,fatal,panic)")
	pFlags.String("dump_log_level", "trace", "client dump log level (trace,debug,info)")
}

func NewCallCommand(parentCmd *cobra.Command, parentVc *viper.Viper) (*cobra.Command, *viper.Viper) {
	rootCmd, rootVc := cli.NewCommand(parentCmd, parentVc, "call", "Invoke a remote method")
	var (
		c api.Client
	)
	rootCmd.PersistentPreRunE = ClientPersistentPreRunE(rootVc, &c)
	AddClientRequiredFlags(rootCmd)
	cli.BindPFlags(rootVc, rootCmd.PersistentFlags())

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		interfaceName := cmd.Flag("interface").Value.String()
		method := cmd.Flag("method").Value.String()
		if len(interfaceName) == 0 || len(method) == 0 {
			return errors.New("require interface and method")
		}
		var body io.Reader
		if file := cmd.Flag("body").Value.String(); len(file) > 0 {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			body = f
		} else if data := cmd.Flag("data").Value.String(); len(data) > 0 {
			body = strings.NewReader(data)
		}
		if stream, _ := cmd.Flags().GetBool("stream"); stream {
			return c.InvokeStream(interfaceName, method, body)
		}
		return c.Invoke(interfaceName, method, body, cmd.Flag("content_type").Value.String())
	}
	rootFlags := rootCmd.Flags()
	rootFlags.String("interface", "", "fully qualified interface name, ex) soapkit.sample.Greeter")
	rootFlags.String("method", "", "method name")
	rootFlags.String("body", "", "file path of the argument body")
	rootFlags.String("data", "", "inline argument body")
	rootFlags.String("content_type", "text/xml; charset=UTF-8", "content type of the argument body")
	rootFlags.Bool("stream", false, "send the body as a raw byte stream")
	return rootCmd, rootVc
}
