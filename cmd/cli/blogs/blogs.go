package blogs

import (
	"fmt"
	"net/url"

	"github.com/crucial707/blog-api/cmd/cli/client"
	"github.com/crucial707/blog-api/cmd/cli/output"
	"github.com/crucial707/blog-api/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Blogs
// ==========================
func InitBlogs(rootCmd *cobra.Command) {
	blogsCmd := &cobra.Command{
		Use:   "blogs",
		Short: "Read and write blogs",
	}

	blogsCmd.AddCommand(
		listBlogsCmd(),
		postBlogCmd(),
		updateBlogCmd(),
		deleteBlogCmd(),
	)

	rootCmd.AddCommand(blogsCmd)
}

// ==========================
// LIST
// ==========================
func listBlogsCmd() *cobra.Command {
	var author string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blogs (all blogs require admin; --author does not)",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/blogs"
			if author != "" {
				path += "/" + url.PathEscape(author)
			}

			var blogs []models.Blog
			if err := client.Do("GET", path, nil, &blogs); err != nil {
				return err
			}

			if asJSON {
				return output.PrintJSON(blogs)
			}

			rows := make([][]interface{}, 0, len(blogs))
			for _, b := range blogs {
				rows = append(rows, []interface{}{b.ID, b.Author, b.Title, b.Tag})
			}
			output.RenderTable([]string{"ID", "Author", "Title", "Tag"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "only blogs by this author")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// POST
// ==========================
func postBlogCmd() *cobra.Command {
	var title, content, tag string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Publish a blog as the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"title": title, "content": content}
			if tag != "" {
				payload["tag"] = tag
			}

			var blog models.Blog
			if err := client.Do("POST", "/blog", payload, &blog); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Blog %d created\n", blog.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "blog title")
	cmd.Flags().StringVar(&content, "content", "", "blog content")
	cmd.Flags().StringVar(&tag, "tag", "", "optional tag")
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateBlogCmd() *cobra.Command {
	var title, content, tag string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update one of your blogs; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{}
			for name, v := range map[string]string{"title": title, "content": content, "tag": tag} {
				if cmd.Flags().Changed(name) {
					payload[name] = v
				}
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update: set --title, --content or --tag")
			}

			var blog models.Blog
			if err := client.Do("PUT", "/blog/"+args[0], payload, &blog); err != nil {
				return err
			}
			return output.PrintJSON(blog)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new content")
	cmd.Flags().StringVar(&tag, "tag", "", "new tag")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteBlogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete one of your blogs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Do("DELETE", "/blog/"+args[0], nil, nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Blog deleted")
			return nil
		},
	}
}
