// Package catalog implements books.CatalogClient against the Google Books API.
package catalog
