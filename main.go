// Package main is the entry point of presenter.
package main

import (
	"github.com/samber/lo"
	"github.com/video-presenter/presenter/cmd"
	"github.com/video-presenter/presenter/config"
	"github.com/video-presenter/presenter/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
