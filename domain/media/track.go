package media

import "time"

// Track is an MP3 file in the output directory
type Track struct {
	Name      string
	Path      string
	SizeBytes int64
	ModTime   time.Time
}

// SizeMB returns the file size in megabytes
func (t Track) SizeMB() float64 {
	return float64(t.SizeBytes) / (1024 * 1024)
}

// TotalSizeMB sums the size of all tracks in megabytes
func TotalSizeMB(tracks []Track) float64 {
	var total int64
	for _, t := range tracks {
		total += t.SizeBytes
	}
	return float64(total) / (1024 * 1024)
}
