package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/marberj/toktrack/internal/database"
	"github.com/marberj/toktrack/internal/export"
)

// ErrUserNotFound is fatal: nothing is imported for an unknown user.
var ErrUserNotFound = errors.New("importer: user not found")

// Options configures one import run. Every entry point takes it
// explicitly; there is no ambient default user or policy.
type Options struct {
	UserID        uuid.UUID
	Policy        Policy
	DryRun        bool
	PostsOnly     bool
	FollowersOnly bool

	// SnapshotDate overrides the date of the snapshot created after a
	// follower import. Zero means time.Now().
	SnapshotDate time.Time
}

type Importer struct {
	db *sql.DB
	q  *database.Queries
}

func New(db *sql.DB, q *database.Queries) *Importer {
	return &Importer{db: db, q: q}
}

// ResolveUser maps a username to its row, translating a missing row to
// ErrUserNotFound so callers can abort before any mutation.
func (imp *Importer) ResolveUser(ctx context.Context, username string) (database.User, error) {
	user, err := imp.q.GetUserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return database.User{}, fmt.Errorf("%w: %q", ErrUserNotFound, username)
	}
	return user, err
}

// Run reconciles one parsed export against the store. The whole batch
// runs inside a single transaction; the commit/rollback decision is
// taken explicitly at the end, so a dry run performs every step and
// then rolls back without faking an error.
//
// Record-level validation failures are isolated: counted, first few
// kept verbosely, batch continues. Storage failures are fatal for the
// run and roll back the transaction.
func (imp *Importer) Run(ctx context.Context, e *export.Export, opts Options) (*Summary, error) {
	tx, err := imp.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := imp.q.WithTx(tx)
	summary := &Summary{DryRun: opts.DryRun}

	importPosts := !opts.FollowersOnly
	importFollows := !opts.PostsOnly

	if opts.Policy == PolicyClearThenImport {
		if err := imp.clearExisting(ctx, qtx, opts.UserID, importPosts, importFollows); err != nil {
			return nil, err
		}
	}

	if importPosts {
		if err := imp.importPosts(ctx, qtx, e, opts, &summary.Posts); err != nil {
			return nil, err
		}
	}

	if importFollows {
		if err := imp.importFollows(ctx, qtx, e, opts, summary); err != nil {
			return nil, err
		}
	}

	if opts.DryRun {
		if err := tx.Rollback(); err != nil {
			return nil, fmt.Errorf("dry run rollback: %w", err)
		}
		return summary, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return summary, nil
}

func (imp *Importer) clearExisting(ctx context.Context, q *database.Queries, userID uuid.UUID, posts, follows bool) error {
	if posts {
		count, err := q.CountPosts(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			log.Printf("Import: deleting %d existing posts", count)
			if err := q.DeleteAllPosts(ctx); err != nil {
				return fmt.Errorf("clearing posts: %w", err)
			}
		}
	}
	if follows {
		fCount, err := q.CountFollowers(ctx, userID)
		if err != nil {
			return err
		}
		gCount, err := q.CountFollowing(ctx, userID)
		if err != nil {
			return err
		}
		if fCount > 0 || gCount > 0 {
			log.Printf("Import: deleting %d followers, %d following", fCount, gCount)
			if err := q.DeleteFollowersByUser(ctx, userID); err != nil {
				return fmt.Errorf("clearing followers: %w", err)
			}
			if err := q.DeleteFollowingByUser(ctx, userID); err != nil {
				return fmt.Errorf("clearing following: %w", err)
			}
		}
	}
	return nil
}

func (imp *Importer) importPosts(ctx context.Context, q *database.Queries, e *export.Export, opts Options, s *KindSummary) error {
	records, entryErrs := e.Posts()
	s.Total = e.PostCount()

	for _, entryErr := range entryErrs {
		s.addError(entryErr.Index, entryErr.Err)
		if s.Errored <= maxVerboseErrors {
			log.Printf("Import: post %v", entryErr)
		}
	}

	for _, rec := range records {
		action, err := reconcilePost(ctx, q, rec, opts.Policy)
		if err != nil {
			return fmt.Errorf("saving post %s: %w", rec.PostID, err)
		}
		switch action {
		case actionCreated:
			s.Created++
		case actionUpdated:
			s.Updated++
		default:
			s.Skipped++
		}
	}
	return nil
}

type reconcileAction int

const (
	actionSkipped reconcileAction = iota
	actionCreated
	actionUpdated
)

func reconcilePost(ctx context.Context, q *database.Queries, rec export.PostRecord, policy Policy) (reconcileAction, error) {
	_, err := q.GetPostByPostID(ctx, rec.PostID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		now := time.Now()
		_, err := q.CreatePost(ctx, database.CreatePostParams{
			ID:        uuid.New(),
			PostID:    rec.PostID,
			Title:     rec.Title,
			Likes:     int32(rec.Likes),
			Date:      rec.Date,
			CoverUrl:  rec.CoverURL,
			VideoLink: rec.VideoLink,
			Views:     nullInt32(rec.Views),
			Comments:  nullInt32(rec.Comments),
			Shares:    nullInt32(rec.Shares),
			Bookmarks: nullInt32(rec.Bookmarks),
			Duration:  nullInt32(rec.Duration),
			Hashtags:  pq.StringArray(rec.Hashtags),
			Music:     nullString(rec.Music),
			Location:  nullString(rec.Location),
			IsPrivate: rec.IsPrivate,
			IsPinned:  rec.IsPinned,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return actionSkipped, err
		}
		return actionCreated, nil

	case err != nil:
		return actionSkipped, err

	case policy == PolicyUpdate:
		_, err := q.UpdatePost(ctx, database.UpdatePostParams{
			PostID:    rec.PostID,
			Title:     rec.Title,
			Likes:     int32(rec.Likes),
			Date:      rec.Date,
			CoverUrl:  rec.CoverURL,
			VideoLink: rec.VideoLink,
			Views:     nullInt32(rec.Views),
			Comments:  nullInt32(rec.Comments),
			Shares:    nullInt32(rec.Shares),
			Bookmarks: nullInt32(rec.Bookmarks),
			Duration:  nullInt32(rec.Duration),
			Hashtags:  pq.StringArray(rec.Hashtags),
			Music:     nullString(rec.Music),
			Location:  nullString(rec.Location),
			IsPrivate: rec.IsPrivate,
			IsPinned:  rec.IsPinned,
			UpdatedAt: time.Now(),
		})
		if err != nil {
			return actionSkipped, err
		}
		return actionUpdated, nil

	default:
		return actionSkipped, nil
	}
}

func (imp *Importer) importFollows(ctx context.Context, q *database.Queries, e *export.Export, opts Options, summary *Summary) error {
	followers, followerErrs := e.Followers()
	following, followingErrs := e.Following()

	if err := imp.importFollowSet(ctx, q, opts.UserID, followers, followerErrs, e.FollowerCount(), followKindFollower, &summary.Followers); err != nil {
		return err
	}
	if err := imp.importFollowSet(ctx, q, opts.UserID, following, followingErrs, e.FollowingCount(), followKindFollowing, &summary.Following); err != nil {
		return err
	}

	if len(followers) == 0 && len(following) == 0 {
		return nil
	}

	snapshotDate := opts.SnapshotDate
	if snapshotDate.IsZero() {
		snapshotDate = time.Now()
	}
	_, err := q.UpsertFollowerSnapshot(ctx, database.UpsertFollowerSnapshotParams{
		ID:             uuid.New(),
		UserID:         opts.UserID,
		SnapshotDate:   snapshotDate,
		FollowerCount:  int32(len(followers)),
		FollowingCount: int32(len(following)),
		CreatedAt:      time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	summary.SnapshotCreated = true
	summary.SnapshotDate = snapshotDate
	return nil
}

type followKind int

const (
	followKindFollower followKind = iota
	followKindFollowing
)

// importFollowSet checks each entry individually so created/skipped
// counts are precise, then inserts all new rows in one conflict-ignore
// round trip. Both paths converge on the same final state.
func (imp *Importer) importFollowSet(ctx context.Context, q *database.Queries, userID uuid.UUID, records []export.FollowRecord, entryErrs []export.EntryError, total int, kind followKind, s *KindSummary) error {
	s.Total = total
	label := "follower"
	if kind == followKindFollowing {
		label = "following"
	}

	for _, entryErr := range entryErrs {
		s.addError(entryErr.Index, entryErr.Err)
		if s.Errored <= maxVerboseErrors {
			log.Printf("Import: %s %v", label, entryErr)
		}
	}

	usernames := make([]string, 0, len(records))
	dates := make([]time.Time, 0, len(records))

	for _, rec := range records {
		var exists bool
		var err error
		if kind == followKindFollower {
			exists, err = q.FollowerExists(ctx, database.FollowerExistsParams{UserID: userID, Username: rec.Username})
		} else {
			exists, err = q.FollowingExists(ctx, database.FollowingExistsParams{UserID: userID, Username: rec.Username})
		}
		if err != nil {
			return fmt.Errorf("checking %s %s: %w", label, rec.Username, err)
		}
		if exists {
			s.Skipped++
			continue
		}
		usernames = append(usernames, rec.Username)
		dates = append(dates, rec.DateFollowed)
		s.Created++
	}

	if len(usernames) == 0 {
		return nil
	}

	var err error
	if kind == followKindFollower {
		_, err = q.BulkInsertFollowers(ctx, database.BulkInsertFollowersParams{
			UserID: userID, Usernames: usernames, Dates: dates, CreatedAt: time.Now(),
		})
	} else {
		_, err = q.BulkInsertFollowing(ctx, database.BulkInsertFollowingParams{
			UserID: userID, Usernames: usernames, Dates: dates, CreatedAt: time.Now(),
		})
	}
	if err != nil {
		return fmt.Errorf("bulk inserting %s: %w", label, err)
	}
	return nil
}

func nullInt32(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
