package main

import (
	"fmt"
	"os"

	"github.com/blogosphere/blog/internal/cli"
)

// @title           Blogosphere API
// @version         1.0
// @description     Read-only JSON view of the blog's posts and comments.
// @BasePath        /api
func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
