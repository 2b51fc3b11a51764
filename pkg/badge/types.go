// Package badge holds the wire types consumed by the on-page badge and
// popup collaborators.
package badge

import "github.com/mgalli/ratiolens/pkg/ratio"

// Manifest describes the addon to its UI clients.
type Manifest struct {
	ID          string   `json:"id"`
	Version     string   `json:"version"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	IDPrefixes  []string `json:"idPrefixes"`
	Resources   []string `json:"resources"`
}

// Badge is the compact projection of an extraction result that the on-page
// badge renders: text and title for the icon plus a clickable source link.
type Badge struct {
	AspectRatio     string  `json:"aspectRatio"`
	DisplayText     string  `json:"displayText"`
	MappedTypeShort *string `json:"mappedTypeShort"`
	MappedTypeLong  *string `json:"mappedTypeLong"`
	Source          string  `json:"source"`
	SourceURL       string  `json:"sourceUrl"`
}

// FromResult projects a full extraction record onto the badge shape.
func FromResult(r *ratio.Result) Badge {
	return Badge{
		AspectRatio:     r.AspectRatio,
		DisplayText:     r.DisplayText,
		MappedTypeShort: r.MappedTypeShort,
		MappedTypeLong:  r.MappedTypeLong,
		Source:          r.Source,
		SourceURL:       r.SourceURL,
	}
}

// TitleInfo is served to the popup for the tooltip line under the badge.
type TitleInfo struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}
