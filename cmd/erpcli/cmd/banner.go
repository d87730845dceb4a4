package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
)

func printBanner(appName string) {
	myFigure := figure.NewFigure(appName, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
