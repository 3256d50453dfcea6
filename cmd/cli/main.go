package main

import (
	"fmt"
	"os"

	"github.com/crucial707/blog-api/cmd/cli/auth"
	"github.com/crucial707/blog-api/cmd/cli/blogs"
	"github.com/crucial707/blog-api/cmd/cli/root"
	"github.com/crucial707/blog-api/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	users.InitUsers(rootCmd)
	blogs.InitBlogs(rootCmd)

	// Execute the root Cobra command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
