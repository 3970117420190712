package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marberj/toktrack/internal/analytics"
	"github.com/marberj/toktrack/internal/api/handlers"
	"github.com/marberj/toktrack/internal/cli"
	"github.com/marberj/toktrack/internal/config"
	"github.com/marberj/toktrack/internal/importer"
	"github.com/marberj/toktrack/internal/middleware"
	"github.com/marberj/toktrack/internal/worker"
)

func main() {

	dbQueries, dbConn, err := config.LoadDatabase()
	if err != nil {
		log.Fatalln(err)
	}
	defer dbConn.Close()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "import":
			fs := flag.NewFlagSet("import", flag.ExitOnError)
			file := fs.String("file", "", "path to export JSON file")
			username := fs.String("username", "", "target user")
			policy := fs.String("policy", "", "duplicate policy: skip, update or clear-then-import")
			dryRun := fs.Bool("dry-run", false, "parse and validate without committing")
			postsOnly := fs.Bool("posts-only", false, "import posts only")
			followersOnly := fs.Bool("followers-only", false, "import followers only")
			snapshotDate := fs.String("snapshot-date", "", "snapshot date override (YYYY-MM-DD)")
			fs.Parse(os.Args[2:])

			parsedPolicy, err := importer.ParsePolicy(*policy)
			if err != nil {
				log.Fatalf("Invalid --policy: %v", err)
			}

			opts := importer.Options{
				Policy:        parsedPolicy,
				DryRun:        *dryRun,
				PostsOnly:     *postsOnly,
				FollowersOnly: *followersOnly,
			}
			if *snapshotDate != "" {
				parsed, err := time.Parse("2006-01-02", *snapshotDate)
				if err != nil {
					log.Fatalf("Invalid --snapshot-date: %v", err)
				}
				opts.SnapshotDate = parsed
			}

			cli.HandleImport(dbConn, dbQueries, *file, *username, opts)
			return

		case "import-history":
			fs := flag.NewFlagSet("import-history", flag.ExitOnError)
			username := fs.String("username", "", "target user")
			dryRun := fs.Bool("dry-run", false, "compare without saving snapshots")
			fs.Parse(os.Args[2:])

			cli.HandleImportHistory(dbConn, dbQueries, fs.Args(), *username, *dryRun)
			return

		case "serve":
			// fall through to the server below
		default:
			log.Fatalf("Unknown command: %s (expected serve, import or import-history)", os.Args[1])
		}
	}

	cfg := config.Load()

	w := worker.NewWorker(dbQueries)
	w.Start(cfg.SnapshotInterval)

	imp := importer.New(dbConn, dbQueries)
	svc := analytics.NewService(dbQueries)

	h := handlers.NewHandler(dbQueries, dbConn, &cfg, imp, svc, w)

	r := gin.Default()
	r.Use(middleware.SecurityHeadersMiddleware())

	r.GET("/health", h.HealthCheckHandler)

	api := r.Group("/api")
	{
		api.GET("/users", h.UsersHandler)
		api.POST("/users", h.CreateUserHandler)

		api.POST("/import", h.ImportHandler)
		api.POST("/posts/import", h.ImportPostsHandler)

		api.GET("/posts", h.PostsHandler)
		api.GET("/posts/stats", h.PostStatsHandler)
		api.GET("/posts/trends", h.TrendsHandler)
		api.GET("/posts/top_posts_by_time", h.TopPostsByTimeHandler)
		api.GET("/posts/keyword_frequency", h.KeywordFrequencyHandler)
		api.GET("/posts/engagement_ratio_analysis", h.EngagementRatioHandler)
		api.GET("/posts/export.csv", h.ExportPostsCSVHandler)

		api.GET("/followers/stats", h.FollowerStatsHandler)
		api.GET("/followers/common", h.MutualsHandler)
		api.GET("/followers/followers-only", h.FollowersOnlyHandler)
		api.GET("/followers/following-only", h.FollowingOnlyHandler)
		api.GET("/followers/growth", h.FollowerGrowthHandler)
		api.GET("/followers/export.csv", h.ExportFollowersCSVHandler)

		api.GET("/worker/status", h.WorkerStatusHandler)
		api.POST("/worker/snapshot", h.TriggerSnapshotHandler)
	}

	r.Run(":" + cfg.Port)
}
