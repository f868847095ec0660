package models

import (
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/books"
	"gorm.io/datatypes"
)

// BookModel is the GORM database model for saved books
type BookModel struct {
	ID                 uint                        `gorm:"primaryKey;autoIncrement"`
	UserID             string                      `gorm:"not null;index;type:varchar(36)"`
	User               *UserAccountModel           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	UpstreamID         string                      `gorm:"type:varchar(64);index"`
	Title              string                      `gorm:"not null;type:varchar(1024)"`
	Subtitle           string                      `gorm:"type:varchar(1024)"`
	Authors            datatypes.JSONSlice[string]
	Publisher          string                      `gorm:"type:varchar(255)"`
	PublishedDate      string                      `gorm:"type:varchar(32)"`
	Description        string                      `gorm:"type:text"`
	ISBN10             string                      `gorm:"column:isbn10;type:varchar(10)"`
	ISBN13             string                      `gorm:"column:isbn13;type:varchar(13)"`
	ISSN               string                      `gorm:"column:issn;type:varchar(32)"`
	OtherIdentifier    string                      `gorm:"type:varchar(64)"`
	PageCount          int                        
	UpstreamCategories datatypes.JSONSlice[string]
	Thumbnail          string                      `gorm:"type:text"`
	SmallThumbnail     string                      `gorm:"type:text"`
	SmallImage         string                      `gorm:"type:text"`
	MediumImage        string                      `gorm:"type:text"`
	LargeImage         string                      `gorm:"type:text"`
	ExtraLargeImage    string                      `gorm:"type:text"`
	UpstreamLink       string                      `gorm:"type:text"`
	CustomCategories   datatypes.JSONSlice[string] `gorm:"column:custom_categories"`
	CreatedAt          time.Time                   `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (BookModel) TableName() string {
	return "books"
}

// ToDomain converts GORM model to domain entity
func (m *BookModel) ToDomain() *books.Book {
	return &books.Book{
		ID:                 m.ID,
		UserID:             m.UserID,
		UpstreamID:         m.UpstreamID,
		Title:              m.Title,
		Subtitle:           m.Subtitle,
		Authors:            cloneStrings(m.Authors),
		Publisher:          m.Publisher,
		PublishedDate:      m.PublishedDate,
		Description:        m.Description,
		ISBN10:             m.ISBN10,
		ISBN13:             m.ISBN13,
		ISSN:               m.ISSN,
		OtherIdentifier:    m.OtherIdentifier,
		PageCount:          m.PageCount,
		UpstreamCategories: cloneStrings(m.UpstreamCategories),
		Thumbnail:          m.Thumbnail,
		SmallThumbnail:     m.SmallThumbnail,
		SmallImage:         m.SmallImage,
		MediumImage:        m.MediumImage,
		LargeImage:         m.LargeImage,
		ExtraLargeImage:    m.ExtraLargeImage,
		UpstreamLink:       m.UpstreamLink,
		CustomCategories:   cloneStrings(m.CustomCategories),
		CreatedAt:          m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *BookModel) FromDomain(b *books.Book) {
	m.ID = b.ID
	m.UserID = b.UserID
	m.UpstreamID = b.UpstreamID
	m.Title = b.Title
	m.Subtitle = b.Subtitle
	m.Authors = datatypes.NewJSONSlice(cloneStrings(b.Authors))
	m.Publisher = b.Publisher
	m.PublishedDate = b.PublishedDate
	m.Description = b.Description
	m.ISBN10 = b.ISBN10
	m.ISBN13 = b.ISBN13
	m.ISSN = b.ISSN
	m.OtherIdentifier = b.OtherIdentifier
	m.PageCount = b.PageCount
	m.UpstreamCategories = datatypes.NewJSONSlice(cloneStrings(b.UpstreamCategories))
	m.Thumbnail = b.Thumbnail
	m.SmallThumbnail = b.SmallThumbnail
	m.SmallImage = b.SmallImage
	m.MediumImage = b.MediumImage
	m.LargeImage = b.LargeImage
	m.ExtraLargeImage = b.ExtraLargeImage
	m.UpstreamLink = b.UpstreamLink
	m.CustomCategories = datatypes.NewJSONSlice(cloneStrings(b.CustomCategories))
	m.CreatedAt = b.CreatedAt
}
