// valgen generates immutable value types from YAML descriptions.
//
//	valgen generate --target ./geo geo.yaml
//	valgen watch --target ./geo geo.yaml
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a := newApp(afero.NewOsFs(), os.Stderr, os.Environ)
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
