// Command git-z builds conventional commit messages from a short dialog and
// manages the git-z.toml configuration of a repository.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	code := run(ctx, os.Args[1:], newApp(os.Stdin, os.Stdout, os.Stderr))

	stop()
	os.Exit(code)
}
