// Package models contains the GORM persistence models that map to database tables.
// They stay separate from domain entities so the domain layer carries no ORM tags.
// Each model converts with ToDomain and FromDomain.
package models
