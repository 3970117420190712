// SPDX-License-Identifier: AGPL-3.0-only
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/marberj/toktrack/internal/database"
	"github.com/marberj/toktrack/internal/export"
	"github.com/marberj/toktrack/internal/history"
	"github.com/marberj/toktrack/internal/importer"
)

// HandleImport reads one export file, reconciles it and prints the
// per-kind summary.
func HandleImport(db *sql.DB, dbQueries *database.Queries, path, username string, opts importer.Options) {
	ctx := context.Background()

	if path == "" {
		log.Fatal("--file is required")
	}
	if username == "" {
		log.Fatal("--username is required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read '%s': %v", path, err)
	}

	parsed, err := export.Detect(raw)
	if err != nil {
		log.Fatalf("Failed to parse '%s': %v", path, err)
	}
	fmt.Printf("Detected %s export: %d posts, %d followers, %d following\n",
		parsed.Format, parsed.PostCount(), parsed.FollowerCount(), parsed.FollowingCount())

	imp := importer.New(db, dbQueries)

	user, err := imp.ResolveUser(ctx, username)
	if err != nil {
		log.Fatalf("User '%s' not found: %v", username, err)
	}
	opts.UserID = user.ID

	summary, err := imp.Run(ctx, parsed, opts)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	if summary.DryRun {
		fmt.Println("Dry run: no changes were committed.")
	}
	printKind("Posts", summary.Posts)
	printKind("Followers", summary.Followers)
	printKind("Following", summary.Following)
	if summary.SnapshotCreated {
		fmt.Printf("Snapshot recorded for %s\n", summary.SnapshotDate.Format("2006-01-02"))
	}
}

// HandleImportHistory parses several export files, orders them by
// snapshot date and reports follower changes between them. File
// modification time stands in when an export carries no entry dates.
func HandleImportHistory(db *sql.DB, dbQueries *database.Queries, paths []string, username string, dryRun bool) {
	ctx := context.Background()

	if len(paths) == 0 {
		log.Fatal("at least one export file is required")
	}
	if username == "" {
		log.Fatal("--username is required")
	}

	snapshots := make([]history.Snapshot, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read '%s': %v", path, err)
		}

		parsed, err := export.Detect(raw)
		if err != nil {
			log.Fatalf("Failed to parse '%s': %v", path, err)
		}

		fallback := time.Now()
		if info, err := os.Stat(path); err == nil {
			fallback = info.ModTime()
		}
		snapshots = append(snapshots, history.ExtractSnapshot(parsed, path, fallback))
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Date.Before(snapshots[j].Date)
	})

	analysis := history.Diff(snapshots)
	printAnalysis(analysis)

	if dryRun {
		fmt.Println("Dry run: no snapshots were saved.")
		return
	}

	imp := importer.New(db, dbQueries)
	user, err := imp.ResolveUser(ctx, username)
	if err != nil {
		log.Fatalf("User '%s' not found: %v", username, err)
	}

	created, updated, err := analysis.Apply(ctx, dbQueries, user.ID)
	if err != nil {
		log.Fatalf("Failed to save snapshots: %v", err)
	}
	fmt.Printf("Saved snapshots: %d created, %d updated\n", created, updated)
}

func printKind(label string, s importer.KindSummary) {
	if s.Total == 0 {
		return
	}
	fmt.Printf("%s: %d total, %d created, %d updated, %d skipped, %d errors\n",
		label, s.Total, s.Created, s.Updated, s.Skipped, s.Errored)
	for _, e := range s.Errors {
		fmt.Printf("  entry #%d: %s\n", e.Index, e.Message)
	}
	if s.Errored > len(s.Errors) {
		fmt.Printf("  ... and %d more errors\n", s.Errored-len(s.Errors))
	}
}

func printAnalysis(a *history.Analysis) {
	fmt.Printf("Compared %d snapshots\n", len(a.Snapshots))
	for _, snap := range a.Snapshots {
		fmt.Printf("  %s  %s: %d followers, %d following\n",
			snap.Date.Format("2006-01-02"), snap.Source, len(snap.Followers), len(snap.Following))
	}
	for _, change := range a.Changes {
		fmt.Printf("%s -> %s: +%d/-%d followers (net %+d), +%d/-%d following (net %+d)\n",
			change.FromDate.Format("2006-01-02"), change.ToDate.Format("2006-01-02"),
			len(change.FollowersGained), len(change.FollowersLost), change.NetFollowers,
			len(change.FollowingGained), len(change.FollowingLost), change.NetFollowing)
	}
	fmt.Printf("Total across all periods: %d gained, %d lost\n", len(a.TotalGained), len(a.TotalLost))
}
