package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/blogwire/blogwire/internal/app"
	"github.com/blogwire/blogwire/internal/blog"
	"github.com/blogwire/blogwire/internal/categories"
	"github.com/blogwire/blogwire/internal/config"
	"github.com/blogwire/blogwire/internal/entity"
	"github.com/blogwire/blogwire/internal/feed"
)

func main() {
	logger := app.Logger()
	slog.SetDefault(logger)

	configPath := flag.String("config", "", "path to the configuration file")
	op := flag.String("op", "recent", "operation: recent, categories, user-info, blogs, export (gdata adds comments)")
	number := flag.Int("number", 10, "how many posts to list")
	format := flag.String("format", feed.FormatRSS, "feed format for export: rss or atom")
	flag.Parse()

	cfg, err := config.Read(*configPath)

	if err != nil {
		logger.Error("Could not load the configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Received shutdown signal, aborting...")
		cancel()
	}()

	if cfg.Dialect == entity.DialectGData {
		runGData(ctx, logger, cfg, *op, *number, *format)
		return
	}

	runXMLRPC(ctx, logger, cfg, *op, *number, *format)
}

func runXMLRPC(ctx context.Context, logger *slog.Logger, cfg *entity.Config, op string, number int, format string) {
	store, closeStore, err := newStore(ctx, cfg)

	if err != nil {
		logger.Error("Could not open the category store", "error", err)
		os.Exit(1)
	}

	defer closeStore()

	client, err := blog.New(cfg, store)

	if err != nil {
		logger.Error("Could not create the client", "error", err)
		os.Exit(1)
	}

	defer client.Close()

	done := make(chan struct{}, 1)
	finish := func() {
		select {
		case done <- struct{}{}:
		default:
		}
	}

	client.OnError(func(e *blog.Error) {
		logger.Error("Operation failed", "kind", e.Kind.String(), "error", e.Message)
		finish()
	})

	switch op {
	case "recent":
		client.OnRecentPosts(func(posts []entity.Post) {
			for _, p := range posts {
				fmt.Printf("%s\t%s\t%s\n", p.ID, p.Created.Format("2006-01-02"), p.Title)
			}

			finish()
		})
		client.ListRecentPosts(number)
	case "categories":
		client.OnCategories(func(list []entity.Category) {
			for _, cat := range list {
				fmt.Printf("%s\t%s\n", cat.ID, cat.Name)
			}

			finish()
		})
		client.ListCategories()
	case "user-info":
		client.OnUserInfo(func(info entity.UserInfo) {
			fmt.Printf("%s <%s> %s\n", info.Nickname, info.Email, info.URL)
			finish()
		})
		client.FetchUserInfo()
	case "blogs":
		client.OnBlogs(func(blogs []entity.BlogInfo) {
			for _, b := range blogs {
				fmt.Printf("%s\t%s\t%s\n", b.ID, b.Title, b.URL)
			}

			finish()
		})
		client.ListBlogs()
	case "export":
		client.OnRecentPosts(func(posts []entity.Post) {
			exportFeed(logger, cfg, posts, format)
			finish()
		})
		client.ListRecentPosts(number)
	default:
		logger.Error("Unknown operation", "op", op)
		os.Exit(1)
	}

	wait(ctx, done)
}

func runGData(ctx context.Context, logger *slog.Logger, cfg *entity.Config, op string, number int, format string) {
	client, err := blog.NewGData(cfg)

	if err != nil {
		logger.Error("Could not create the client", "error", err)
		os.Exit(1)
	}

	defer client.Close()

	done := make(chan struct{}, 1)
	finish := func() {
		select {
		case done <- struct{}{}:
		default:
		}
	}

	client.OnError(func(e *blog.Error) {
		logger.Error("Operation failed", "kind", e.Kind.String(), "error", e.Message)
		finish()
	})

	switch op {
	case "recent":
		client.OnRecentPosts(func(posts []entity.Post) {
			for _, p := range posts {
				fmt.Printf("%s\t%s\t%s\n", p.ID, p.Created.Format("2006-01-02"), p.Title)
			}

			finish()
		})
		client.ListRecentPosts(number)
	case "blogs":
		// Blog discovery needs the profile id first; chain the two calls.
		client.OnProfileID(func(string) {
			client.ListBlogs()
		})
		client.OnBlogs(func(blogs []entity.BlogInfo) {
			for _, b := range blogs {
				fmt.Printf("%s\t%s\t%s\n", b.ID, b.Title, b.URL)
			}

			finish()
		})
		client.FetchProfileID()
	case "comments":
		client.OnAllComments(func(list []entity.Comment) {
			for _, cm := range list {
				fmt.Printf("%s\t%s\t%s\n", cm.ID, cm.Name, cm.Title)
			}

			finish()
		})
		client.ListAllComments()
	case "export":
		client.OnRecentPosts(func(posts []entity.Post) {
			exportFeed(logger, cfg, posts, format)
			finish()
		})
		client.ListRecentPosts(number)
	default:
		logger.Error("Unknown operation for this dialect", "op", op)
		os.Exit(1)
	}

	wait(ctx, done)
}

func newStore(ctx context.Context, cfg *entity.Config) (categories.Store, func(), error) {
	if cfg.RedisAddr != "" {
		store, err := categories.NewRedisStore(ctx, cfg.RedisAddr)

		if err != nil {
			return nil, nil, err
		}

		return store, func() { store.Close() }, nil
	}

	dir := cfg.DataDir

	if dir == "" {
		cacheDir, err := os.UserCacheDir()

		if err != nil {
			return nil, nil, err
		}

		dir = cacheDir + "/blogwire"
	}

	return categories.NewFileStore(dir), func() {}, nil
}

func exportFeed(logger *slog.Logger, cfg *entity.Config, posts []entity.Post, format string) {
	info := entity.BlogInfo{ID: cfg.BlogID, Title: cfg.BlogID, URL: cfg.URL}
	data, err := feed.Export(info, posts, format)

	if err != nil {
		logger.Error("Could not export the feed", "error", err)
		return
	}

	os.Stdout.Write(data)
}

func wait(ctx context.Context, done chan struct{}) {
	select {
	case <-done:
	case <-ctx.Done():
	}
}
