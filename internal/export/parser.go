package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// postIDMaxLen caps IDs derived from archive video links; TikTok post
// IDs are 19-digit numeric strings.
const postIDMaxLen = 19

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Export is a parsed payload with its format decided once up front.
type Export struct {
	Format   Format
	Metadata *Metadata

	posts     []rawPost
	followers []rawFollow
	following []rawFollow
}

// Detect deserializes a raw payload and classifies it as one of the
// supported shapes. It does not validate individual records; that
// happens per record in Posts/Followers/Following so one bad entry
// cannot abort a batch.
func Detect(raw []byte) (*Export, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, ErrUnknownFormat
	}

	if trimmed[0] == '[' {
		var posts []rawPost
		if err := json.Unmarshal(raw, &posts); err != nil {
			return nil, fmt.Errorf("parsing legacy export: %w", err)
		}
		return &Export{Format: FormatLegacy, posts: posts}, nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	if _, ok := keys["metadata"]; ok {
		var payload metadataPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("parsing export: %w", err)
		}
		if err := validateMetadata(payload.Metadata, len(payload.Posts)); err != nil {
			return nil, err
		}
		return &Export{Format: FormatMetadata, Metadata: payload.Metadata, posts: payload.Posts}, nil
	}

	_, hasPosts := keys["Post"]
	_, hasProfile := keys["Profile And Settings"]
	if hasPosts || hasProfile {
		var payload archivePayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("parsing export: %w", err)
		}
		return &Export{
			Format:    FormatArchive,
			posts:     payload.Post.Posts.VideoList,
			followers: payload.ProfileAndSettings.Follower.FansList,
			following: payload.ProfileAndSettings.Following.Following,
		}, nil
	}

	return nil, ErrUnknownFormat
}

func validateMetadata(meta *Metadata, actual int) error {
	if meta == nil {
		return &MissingFieldError{Field: "metadata"}
	}
	if meta.ExportDate == "" {
		return &MissingFieldError{Field: "metadata.export_date"}
	}
	if meta.Version == "" {
		return &MissingFieldError{Field: "metadata.version"}
	}
	if meta.TotalPosts != actual {
		return &InvalidValueError{
			Field: "metadata.total_posts",
			Value: fmt.Sprintf("declared %d, found %d posts", meta.TotalPosts, actual),
		}
	}
	return nil
}

// PostCount reports how many post entries the payload carries before
// any validation.
func (e *Export) PostCount() int { return len(e.posts) }

// FollowerCount reports raw follower entries in the payload.
func (e *Export) FollowerCount() int { return len(e.followers) }

// FollowingCount reports raw following entries in the payload.
func (e *Export) FollowingCount() int { return len(e.following) }

// Posts converts every post entry to canonical form. Invalid entries
// are returned as EntryErrors alongside the good records.
func (e *Export) Posts() ([]PostRecord, []EntryError) {
	records := make([]PostRecord, 0, len(e.posts))
	var errs []EntryError
	for i, raw := range e.posts {
		rec, err := convertPost(raw)
		if err != nil {
			errs = append(errs, EntryError{Index: i, Err: err})
			continue
		}
		records = append(records, rec)
	}
	return records, errs
}

// Followers converts follower entries to canonical form.
func (e *Export) Followers() ([]FollowRecord, []EntryError) {
	return convertFollows(e.followers)
}

// Following converts following entries to canonical form.
func (e *Export) Following() ([]FollowRecord, []EntryError) {
	return convertFollows(e.following)
}

func convertFollows(entries []rawFollow) ([]FollowRecord, []EntryError) {
	records := make([]FollowRecord, 0, len(entries))
	var errs []EntryError
	for i, raw := range entries {
		username := strings.TrimSpace(raw.UserName)
		if username == "" {
			errs = append(errs, EntryError{Index: i, Err: &MissingFieldError{Field: "UserName"}})
			continue
		}
		date, ok := parseDate(raw.Date)
		if !ok {
			errs = append(errs, EntryError{Index: i, Err: &InvalidDateError{Value: raw.Date}})
			continue
		}
		records = append(records, FollowRecord{Username: username, DateFollowed: date})
	}
	return records, errs
}

func convertPost(raw rawPost) (PostRecord, error) {
	if raw.ArchiveDate != nil {
		return convertArchivePost(raw)
	}
	return convertCanonicalPost(raw)
}

// convertArchivePost maps the TikTok archive field names onto the
// canonical record. The post ID is the trailing path segment of the
// video link, truncated to 19 characters.
func convertArchivePost(raw rawPost) (PostRecord, error) {
	if raw.ArchiveLink == nil || *raw.ArchiveLink == "" {
		return PostRecord{}, &MissingFieldError{Field: "Link"}
	}
	link := *raw.ArchiveLink

	segments := strings.Split(strings.TrimRight(link, "/"), "/")
	id := segments[len(segments)-1]
	if len(id) > postIDMaxLen {
		id = id[:postIDMaxLen]
	}
	if id == "" {
		return PostRecord{}, &InvalidValueError{Field: "Link", Value: link}
	}

	date, ok := parseDate(*raw.ArchiveDate)
	if !ok {
		return PostRecord{}, &InvalidDateError{Value: *raw.ArchiveDate}
	}

	likes := 0
	if raw.ArchiveLikes != nil {
		likes = int(*raw.ArchiveLikes)
	}
	if likes < 0 {
		return PostRecord{}, &InvalidValueError{Field: "Likes", Value: fmt.Sprint(likes)}
	}

	cover := link
	if raw.ArchiveCover != nil && *raw.ArchiveCover != "" {
		cover = *raw.ArchiveCover
	}

	title := ""
	if raw.ArchiveTitle != nil {
		title = *raw.ArchiveTitle
	}

	rec := PostRecord{
		PostID:    id,
		Title:     title,
		Likes:     likes,
		Date:      date,
		CoverURL:  cover,
		VideoLink: link,
	}
	if raw.ArchiveSound != nil {
		rec.Music = *raw.ArchiveSound
	}
	if raw.ArchiveLoc != nil {
		rec.Location = *raw.ArchiveLoc
	}
	return rec, nil
}

func convertCanonicalPost(raw rawPost) (PostRecord, error) {
	switch {
	case raw.ID == nil || *raw.ID == "":
		return PostRecord{}, &MissingFieldError{Field: "id"}
	case raw.Title == nil:
		return PostRecord{}, &MissingFieldError{Field: "title"}
	case raw.Likes == nil:
		return PostRecord{}, &MissingFieldError{Field: "likes"}
	case raw.Date == nil || *raw.Date == "":
		return PostRecord{}, &MissingFieldError{Field: "date"}
	case raw.CoverURL == nil || *raw.CoverURL == "":
		return PostRecord{}, &MissingFieldError{Field: "cover_url"}
	case raw.VideoLink == nil || *raw.VideoLink == "":
		return PostRecord{}, &MissingFieldError{Field: "video_link"}
	}

	date, ok := parseDate(*raw.Date)
	if !ok {
		return PostRecord{}, &InvalidDateError{Value: *raw.Date}
	}

	if *raw.Likes < 0 {
		return PostRecord{}, &InvalidValueError{Field: "likes", Value: fmt.Sprint(int(*raw.Likes))}
	}

	rec := PostRecord{
		PostID:    *raw.ID,
		Title:     *raw.Title,
		Likes:     int(*raw.Likes),
		Date:      date,
		CoverURL:  *raw.CoverURL,
		VideoLink: *raw.VideoLink,
		Hashtags:  raw.Hashtags,
	}

	var err error
	if rec.Views, err = optionalCount("views", raw.Views); err != nil {
		return PostRecord{}, err
	}
	if rec.Comments, err = optionalCount("comments", raw.Comments); err != nil {
		return PostRecord{}, err
	}
	if rec.Shares, err = optionalCount("shares", raw.Shares); err != nil {
		return PostRecord{}, err
	}
	if rec.Bookmarks, err = optionalCount("bookmarks", raw.Bookmarks); err != nil {
		return PostRecord{}, err
	}
	if rec.Duration, err = optionalCount("duration", raw.Duration); err != nil {
		return PostRecord{}, err
	}

	if raw.Music != nil {
		rec.Music = *raw.Music
	}
	if raw.Location != nil {
		rec.Location = *raw.Location
	}
	if raw.IsPrivate != nil {
		rec.IsPrivate = *raw.IsPrivate
	}
	if raw.IsPinned != nil {
		rec.IsPinned = *raw.IsPinned
	}
	return rec, nil
}

func optionalCount(field string, v *flexInt) (*int, error) {
	if v == nil {
		return nil, nil
	}
	n := int(*v)
	if n < 0 {
		return nil, &InvalidValueError{Field: field, Value: fmt.Sprint(n)}
	}
	return &n, nil
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
