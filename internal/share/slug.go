package share

import "strings"

// Slugify turns a trip name into a safe filename fragment: lowercase ASCII
// letters and digits, runs of anything else collapsed into single dashes.
// Names that leave nothing behind fall back to "trip".
func Slugify(name string) string {
	var b strings.Builder
	dash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "trip"
	}
	return s
}

// BackupFilename is the suggested download name for a backup export.
func BackupFilename(tripName string) string {
	return Slugify(tripName) + "-backup.json"
}

// ImageFilename is the suggested download name for the summary card.
func ImageFilename(tripName string) string {
	return Slugify(tripName) + "-summary.png"
}
