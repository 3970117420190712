package helpers

// PostURL builds the public video URL for a stored post.
func PostURL(author, postID string) string {
	return "https://www.tiktok.com/@" + author + "/video/" + postID
}

// ProfileURL builds the public profile URL for a username.
func ProfileURL(username string) string {
	return "https://tiktok.com/@" + username
}
