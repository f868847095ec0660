package catalog

import (
	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"github.com/samber/lo"
)

// Google Books industry identifier types
const (
	identifierISBN10 = "ISBN_10"
	identifierISBN13 = "ISBN_13"
	identifierISSN   = "ISSN"
	identifierOther  = "OTHER"
)

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Subtitle            string               `json:"subtitle"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
	PageCount           int                  `json:"pageCount"`
	Categories          []string             `json:"categories"`
	ImageLinks          *imageLinks          `json:"imageLinks"`
	InfoLink            string               `json:"infoLink"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
	Small          string `json:"small"`
	Medium         string `json:"medium"`
	Large          string `json:"large"`
	ExtraLarge     string `json:"extraLarge"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// toBook maps a volume onto an unsaved Book. Missing values stay zero.
func (v *volume) toBook() *books.Book {
	info := v.VolumeInfo
	b := &books.Book{
		UpstreamID:         v.ID,
		Title:              info.Title,
		Subtitle:           info.Subtitle,
		Authors:            info.Authors,
		Publisher:          info.Publisher,
		PublishedDate:      info.PublishedDate,
		Description:        info.Description,
		PageCount:          info.PageCount,
		UpstreamCategories: info.Categories,
		UpstreamLink:       info.InfoLink,
	}

	for _, id := range info.IndustryIdentifiers {
		switch id.Type {
		case identifierISBN10:
			b.ISBN10 = id.Identifier
		case identifierISBN13:
			b.ISBN13 = id.Identifier
		case identifierISSN:
			b.ISSN = id.Identifier
		case identifierOther:
			b.OtherIdentifier = id.Identifier
		}
	}

	if links := info.ImageLinks; links != nil {
		b.SmallThumbnail = links.SmallThumbnail
		b.Thumbnail = links.Thumbnail
		b.SmallImage = links.Small
		b.MediumImage = links.Medium
		b.LargeImage = links.Large
		b.ExtraLargeImage = links.ExtraLarge
	}

	// Google returns volumes without a title. They are still saved, listed under their id.
	b.Title = lo.CoalesceOrEmpty(b.Title, b.UpstreamID, "Untitled")
	return b
}
