package export

import (
	"encoding/json"
	"strconv"
	"time"
)

type Format string

const (
	// FormatLegacy is a flat JSON array of post objects.
	FormatLegacy Format = "legacy"
	// FormatArchive is the nested TikTok data export
	// (Post.Posts.VideoList, Profile And Settings).
	FormatArchive Format = "archive"
	// FormatMetadata is the API import shape: {"metadata": {...}, "posts": [...]}.
	FormatMetadata Format = "metadata"
)

// PostRecord is a canonical post, independent of the source shape.
type PostRecord struct {
	PostID    string
	Title     string
	Likes     int
	Date      time.Time
	CoverURL  string
	VideoLink string
	Views     *int
	Comments  *int
	Shares    *int
	Bookmarks *int
	Duration  *int
	Hashtags  []string
	Music     string
	Location  string
	IsPrivate bool
	IsPinned  bool
}

// FollowRecord is a canonical follower or following entry.
type FollowRecord struct {
	Username     string
	DateFollowed time.Time
}

// Metadata describes the envelope of a FormatMetadata payload.
type Metadata struct {
	ExportDate string `json:"export_date"`
	Version    string `json:"version"`
	TotalPosts int    `json:"total_posts"`
}

// flexInt unmarshals from a JSON number or a numeric string; TikTok
// exports quote their counters.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*f = flexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

type rawPost struct {
	// Canonical form.
	ID        *string   `json:"id"`
	Title     *string   `json:"title"`
	Likes     *flexInt  `json:"likes"`
	Date      *string   `json:"date"`
	CoverURL  *string   `json:"cover_url"`
	VideoLink *string   `json:"video_link"`
	Views     *flexInt  `json:"views"`
	Comments  *flexInt  `json:"comments"`
	Shares    *flexInt  `json:"shares"`
	Bookmarks *flexInt  `json:"bookmarks"`
	Duration  *flexInt  `json:"duration"`
	Hashtags  []string  `json:"hashtags"`
	Music     *string   `json:"music"`
	Location  *string   `json:"location"`
	IsPrivate *bool     `json:"is_private"`
	IsPinned  *bool     `json:"is_pinned"`

	// TikTok archive form; presence of "Date" selects it.
	ArchiveDate  *string  `json:"Date"`
	ArchiveLink  *string  `json:"Link"`
	ArchiveTitle *string  `json:"Title"`
	ArchiveLikes *flexInt `json:"Likes"`
	ArchiveCover *string  `json:"CoverImage"`
	ArchiveSound *string  `json:"Sound"`
	ArchiveLoc   *string  `json:"Location"`
}

type rawFollow struct {
	UserName string `json:"UserName"`
	Date     string `json:"Date"`
}

type archivePayload struct {
	Post struct {
		Posts struct {
			VideoList []rawPost `json:"VideoList"`
		} `json:"Posts"`
	} `json:"Post"`
	ProfileAndSettings struct {
		Follower struct {
			FansList []rawFollow `json:"FansList"`
		} `json:"Follower"`
		Following struct {
			Following []rawFollow `json:"Following"`
		} `json:"Following"`
	} `json:"Profile And Settings"`
}

type metadataPayload struct {
	Metadata *Metadata `json:"metadata"`
	Posts    []rawPost `json:"posts"`
}
