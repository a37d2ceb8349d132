// Command xcmgen generates Solidity XCM bridge contracts through an
// interactive wizard, flags, or a small web form.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	cmd := newApp(os.Stdin, os.Stdout, os.Stderr).command()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		logrus.WithError(err).Error("xcmgen failed")
		os.Exit(1)
	}
}
