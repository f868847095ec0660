// Package models contains GORM database models for the persistence layer.
// They are kept apart from the domain entities and converted with
// ToDomain/FromDomain at the repository boundary.
package models
