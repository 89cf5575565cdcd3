package main

import (
	"fmt"
	"os"

	"fjacquet/spend-insights/cmd/cashback"
	"fjacquet/spend-insights/cmd/invest"
	"fjacquet/spend-insights/cmd/mainpage"
	"fjacquet/spend-insights/cmd/report"
	"fjacquet/spend-insights/cmd/root"
	"fjacquet/spend-insights/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(mainpage.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(cashback.Cmd)
	root.Cmd.AddCommand(invest.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
