package media

import "time"

// Kind separates display images from downloadable attachments.
const (
	KindImage      = "image"
	KindAttachment = "attachment"
)

// Media is the metadata row for one stored file. Filename is the uuid-based
// name on disk; OriginalName is what the uploader called it.
type Media struct {
	ID           int64     `json:"id"`
	Kind         string    `json:"kind"`
	Filename     string    `json:"-"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidKind reports whether kind is one of the accepted media kinds.
func ValidKind(kind string) bool {
	return kind == KindImage || kind == KindAttachment
}
