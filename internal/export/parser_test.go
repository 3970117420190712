package export

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_Legacy(t *testing.T) {
	body := `[
		{
			"id": "7123456789012345678",
			"title": "beach day #fyp",
			"likes": "1500",
			"date": "2024-03-01T10:00:00",
			"cover_url": "https://cdn.example.com/cover1.jpg",
			"video_link": "https://www.tiktok.com/@me/video/7123456789012345678",
			"views": 20000,
			"comments": "42",
			"hashtags": ["fyp", "beach"]
		}
	]`

	e, err := Detect([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, FormatLegacy, e.Format)
	assert.Equal(t, 1, e.PostCount())

	records, errs := e.Posts()
	require.Empty(t, errs)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "7123456789012345678", rec.PostID)
	assert.Equal(t, 1500, rec.Likes)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), rec.Date)
	require.NotNil(t, rec.Views)
	assert.Equal(t, 20000, *rec.Views)
	require.NotNil(t, rec.Comments)
	assert.Equal(t, 42, *rec.Comments)
	assert.Nil(t, rec.Shares)
	assert.Equal(t, []string{"fyp", "beach"}, rec.Hashtags)
}

func TestDetect_Archive(t *testing.T) {
	body := `{
		"Post": {
			"Posts": {
				"VideoList": [
					{
						"Date": "2024-01-15 08:30:00",
						"Link": "https://www.tiktokv.com/share/video/71234567890123456789999/",
						"Title": "first post",
						"Likes": "250",
						"Sound": "original sound"
					}
				]
			}
		},
		"Profile And Settings": {
			"Follower": {
				"FansList": [
					{"UserName": "alice", "Date": "2024-01-10 12:00:00"},
					{"UserName": "", "Date": "2024-01-11 12:00:00"}
				]
			},
			"Following": {
				"Following": [
					{"UserName": "bob", "Date": "not a date"}
				]
			}
		}
	}`

	e, err := Detect([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, FormatArchive, e.Format)

	records, errs := e.Posts()
	require.Empty(t, errs)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "7123456789012345678", rec.PostID)
	assert.Len(t, rec.PostID, 19)
	assert.Equal(t, 250, rec.Likes)
	assert.Equal(t, "original sound", rec.Music)
	assert.Equal(t, rec.VideoLink, rec.CoverURL)

	followers, followerErrs := e.Followers()
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Username)
	require.Len(t, followerErrs, 1)
	assert.Equal(t, 1, followerErrs[0].Index)
	var missing *MissingFieldError
	assert.True(t, errors.As(followerErrs[0].Err, &missing))

	following, followingErrs := e.Following()
	assert.Empty(t, following)
	require.Len(t, followingErrs, 1)
	var badDate *InvalidDateError
	assert.True(t, errors.As(followingErrs[0].Err, &badDate))
}

func TestDetect_Metadata(t *testing.T) {
	body := `{
		"metadata": {"export_date": "2024-05-01", "version": "1.0", "total_posts": 1},
		"posts": [
			{
				"id": "7000000000000000001",
				"title": "hello",
				"likes": 10,
				"date": "2024-04-30",
				"cover_url": "https://cdn.example.com/c.jpg",
				"video_link": "https://www.tiktok.com/@me/video/7000000000000000001"
			}
		]
	}`

	e, err := Detect([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, FormatMetadata, e.Format)
	require.NotNil(t, e.Metadata)
	assert.Equal(t, "1.0", e.Metadata.Version)
}

func TestDetect_MetadataCountMismatch(t *testing.T) {
	body := `{
		"metadata": {"export_date": "2024-05-01", "version": "1.0", "total_posts": 3},
		"posts": []
	}`

	_, err := Detect([]byte(body))
	var invalid *InvalidValueError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "metadata.total_posts", invalid.Field)
}

func TestDetect_MetadataMissingVersion(t *testing.T) {
	body := `{
		"metadata": {"export_date": "2024-05-01", "total_posts": 0},
		"posts": []
	}`

	_, err := Detect([]byte(body))
	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "metadata.version", missing.Field)
}

func TestDetect_UnknownFormat(t *testing.T) {
	_, err := Detect([]byte(`{"something": "else"}`))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Detect([]byte("  \n "))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestPosts_InvalidEntriesIsolated(t *testing.T) {
	body := `[
		{
			"id": "7000000000000000001",
			"title": "good",
			"likes": 5,
			"date": "2024-04-30",
			"cover_url": "https://cdn.example.com/c.jpg",
			"video_link": "https://www.tiktok.com/@me/video/7000000000000000001"
		},
		{
			"title": "no id",
			"likes": 5,
			"date": "2024-04-30",
			"cover_url": "https://cdn.example.com/c.jpg",
			"video_link": "https://www.tiktok.com/@me/video/x"
		},
		{
			"id": "7000000000000000002",
			"title": "bad date",
			"likes": 5,
			"date": "30/04/2024",
			"cover_url": "https://cdn.example.com/c.jpg",
			"video_link": "https://www.tiktok.com/@me/video/7000000000000000002"
		},
		{
			"id": "7000000000000000003",
			"title": "negative likes",
			"likes": -1,
			"date": "2024-04-30",
			"cover_url": "https://cdn.example.com/c.jpg",
			"video_link": "https://www.tiktok.com/@me/video/7000000000000000003"
		}
	]`

	e, err := Detect([]byte(body))
	require.NoError(t, err)

	records, errs := e.Posts()
	require.Len(t, records, 1)
	assert.Equal(t, "7000000000000000001", records[0].PostID)

	require.Len(t, errs, 3)
	assert.Equal(t, 1, errs[0].Index)
	var missing *MissingFieldError
	assert.True(t, errors.As(errs[0].Err, &missing))
	assert.Equal(t, "id", missing.Field)

	var badDate *InvalidDateError
	assert.True(t, errors.As(errs[1].Err, &badDate))

	var invalid *InvalidValueError
	assert.True(t, errors.As(errs[2].Err, &invalid))
	assert.Equal(t, "likes", invalid.Field)
}

func TestConvertArchivePost_MissingLink(t *testing.T) {
	date := "2024-01-01"
	_, err := convertArchivePost(rawPost{ArchiveDate: &date})
	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Link", missing.Field)
}

func TestParseDate_Layouts(t *testing.T) {
	cases := []string{
		"2024-03-01T10:00:00Z",
		"2024-03-01T10:00:00",
		"2024-03-01 10:00:00",
		"2024-03-01",
	}
	for _, s := range cases {
		parsed, ok := parseDate(s)
		require.True(t, ok, "layout %q", s)
		assert.Equal(t, 2024, parsed.Year())
		assert.Equal(t, time.UTC, parsed.Location())
	}

	_, ok := parseDate("01/03/2024")
	assert.False(t, ok)
}

func TestEntryError_Message(t *testing.T) {
	err := EntryError{Index: 2, Err: &MissingFieldError{Field: "id"}}
	assert.Contains(t, err.Error(), "entry #3")
	var missing *MissingFieldError
	assert.True(t, errors.As(err, &missing))
}
