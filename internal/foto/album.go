package foto

import "strings"

// AlbumYear resolves the year an album is filed under. A four-digit prefix
// of the name wins; a two-digit prefix is read as 20xx; otherwise the
// album's creation time, in local time, decides.
func AlbumYear(album Album) int {
	if y, ok := leadingDigits(album.Name, 4); ok {
		return y
	}
	if y, ok := leadingDigits(album.Name, 2); ok {
		return 2000 + y
	}
	return album.CreateTime.Local().Year()
}

// AlbumDirName converts an album name into a single path component.
// Slashes are flattened so a name like "2023/Summer" stays one directory.
func AlbumDirName(name string) string {
	return strings.ReplaceAll(name, "/", "_")
}

// leadingDigits parses exactly n leading ASCII digits of s.
func leadingDigits(s string, n int) (int, bool) {
	if len(s) < n {
		return 0, false
	}
	v := 0
	for i := 0; i < n; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}
