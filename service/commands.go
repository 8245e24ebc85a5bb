package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"blog/app/models"
	"blog/app/repositories"
	"blog/app/services"

	"github.com/urfave/cli/v2"
)

// Version is the CLI version reported by --version.
var Version = "1.0.0"

// NewApp builds the command-line application.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "blog",
		Usage:   "A small blog with posts, comments and a contact page",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "blog.yaml",
				Usage:   "path to the YAML config file",
				EnvVars: []string{"BLOG_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "db-path",
				Usage: "database directory, overrides the config file",
			},
		},
		Commands: []*cli.Command{
			serveCommand,
			initCommand,
			cleanCommand,
			backupCommand,
			restoreCommand,
			postCommand,
		},
	}
}

var initCommand = &cli.Command{
	Name:  "init",
	Usage: "Initialize a new empty database",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		path, err := diskPath(cfg)
		if err != nil {
			return err
		}

		if exists(path) {
			fmt.Fprintln(c.App.Writer, "Database already exists. Use 'clean' first if you want to reinitialize.")
			return nil
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}

		db, err := repositories.Open(repositories.Options{Path: path})
		if err != nil {
			return err
		}
		if err := db.Close(); err != nil {
			return err
		}

		fmt.Fprintln(c.App.Writer, "Database initialized successfully")
		return nil
	},
}

var cleanCommand = &cli.Command{
	Name:  "clean",
	Usage: "Delete the blog database",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "do not ask for confirmation"},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		path, err := diskPath(cfg)
		if err != nil {
			return err
		}

		if !exists(path) {
			fmt.Fprintln(c.App.Writer, "Database is already clean (does not exist)")
			return nil
		}
		if !c.Bool("force") && !confirm(c, "Are you sure you want to clean the database? This cannot be undone.") {
			fmt.Fprintln(c.App.Writer, "Operation cancelled")
			return nil
		}

		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to clean database: %w", err)
		}
		fmt.Fprintln(c.App.Writer, "Database cleaned successfully")
		return nil
	},
}

var backupCommand = &cli.Command{
	Name:  "backup",
	Usage: "Create a backup of the database",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "dir", Value: filepath.Join("data", "backups"), Usage: "directory for backup files"},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		path, err := diskPath(cfg)
		if err != nil {
			return err
		}
		if !exists(path) {
			return errors.New("no database exists to backup")
		}

		backupDir := c.String("dir")
		if err := os.MkdirAll(backupDir, 0755); err != nil {
			return fmt.Errorf("failed to create backup directory: %w", err)
		}

		db, err := repositories.Open(repositories.Options{Path: path})
		if err != nil {
			return err
		}
		defer db.Close()

		backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
		f, err := os.Create(backupFile)
		if err != nil {
			return fmt.Errorf("failed to create backup file: %w", err)
		}
		if _, err := db.Backup(f, 0); err != nil {
			f.Close()
			return fmt.Errorf("failed to backup database: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write backup file: %w", err)
		}

		fmt.Fprintf(c.App.Writer, "Database backed up successfully to %s\n", backupFile)
		return nil
	},
}

var restoreCommand = &cli.Command{
	Name:      "restore",
	Usage:     "Restore the database from a backup file",
	ArgsUsage: "<backup-file>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "replace an existing database without asking"},
	},
	Action: func(c *cli.Context) error {
		backupFile := c.Args().First()
		if backupFile == "" {
			return errors.New("backup file path required for restore")
		}

		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		path, err := diskPath(cfg)
		if err != nil {
			return err
		}

		fi, err := os.Stat(backupFile)
		if err != nil {
			return fmt.Errorf("backup file does not exist: %s", backupFile)
		}
		if fi.Size() == 0 {
			return fmt.Errorf("backup file is empty: %s", backupFile)
		}

		if exists(path) {
			if !c.Bool("force") && !confirm(c, "Existing database found. Do you want to replace it?") {
				fmt.Fprintln(c.App.Writer, "Operation cancelled")
				return nil
			}
			if err := os.RemoveAll(path); err != nil {
				return fmt.Errorf("failed to remove existing database: %w", err)
			}
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}

		db, err := repositories.Open(repositories.Options{Path: path})
		if err != nil {
			return err
		}
		defer db.Close()

		f, err := os.Open(backupFile)
		if err != nil {
			return fmt.Errorf("failed to open backup file: %w", err)
		}
		defer f.Close()

		if err := db.Load(f, 4); err != nil {
			return fmt.Errorf("failed to restore database: %w", err)
		}

		fmt.Fprintln(c.App.Writer, "Database restored successfully")
		return nil
	},
}

var postCommand = &cli.Command{
	Name:  "post",
	Usage: "Manage posts",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "Publish a new post",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "title", Required: true},
				&cli.StringFlag{Name: "body", Usage: "post body"},
				&cli.PathFlag{Name: "body-file", Usage: "read the post body from a file"},
				&cli.StringFlag{Name: "slug", Usage: "URL slug, derived from the title when empty"},
			},
			Action: addPost,
		},
		{
			Name:   "list",
			Usage:  "List published posts",
			Action: listPosts,
		},
	},
}

// withPostService opens the configured database for the duration of fn.
func withPostService(c *cli.Context, fn func(*services.PostService) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	path, err := diskPath(cfg)
	if err != nil {
		return err
	}

	db, err := repositories.Open(repositories.Options{Path: path})
	if err != nil {
		return err
	}
	defer db.Close()

	comments := repositories.NewBadgerCommentRepository(db)
	defer comments.Close()

	return fn(services.NewPostService(repositories.NewBadgerPostRepository(db), comments))
}

func addPost(c *cli.Context) error {
	body := c.String("body")
	if file := c.Path("body-file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read body file: %w", err)
		}
		body = string(data)
	}

	post := &models.Post{
		Slug:  c.String("slug"),
		Title: c.String("title"),
		Body:  body,
	}

	return withPostService(c, func(ps *services.PostService) error {
		if err := ps.CreatePost(post); err != nil {
			if errors.Is(err, repositories.ErrDuplicateSlug) {
				return fmt.Errorf("a post with slug %q already exists", post.Slug)
			}
			fields := models.FieldErrors(err)
			delete(fields, "")
			if len(fields) > 0 {
				keys := make([]string, 0, len(fields))
				for k := range fields {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(c.App.ErrWriter, "  %s\n", fields[k])
				}
			}
			return err
		}
		fmt.Fprintf(c.App.Writer, "Created post /%s/\n", post.Slug)
		return nil
	})
}

func listPosts(c *cli.Context) error {
	return withPostService(c, func(ps *services.PostService) error {
		posts, err := ps.ListPosts()
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			fmt.Fprintln(c.App.Writer, "No posts yet.")
			return nil
		}

		tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SLUG\tTITLE\tCOMMENTS\tCREATED")
		for _, p := range posts {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.Slug, p.Title, p.CommentCount, p.CreatedAt.Format(time.RFC3339))
		}
		return tw.Flush()
	})
}
