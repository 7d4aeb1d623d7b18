// main.go
package main

import (
	"context"
	"os"

	"pancard/dataloader/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:]))
}
