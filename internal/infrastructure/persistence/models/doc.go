// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Monetary amounts are always persisted as two columns: an integer count of
// minor units (cents) and a three-letter currency code. Mappers rebuild
// valueobject.Money from those columns, so no float ever touches a money value.
//
// Structure:
// - base.go: Base persistence models (BaseModel, TenantAggregateModel)
// - crm.go: CRM context models (Lead, Estimate, EstimateLine)
// - project.go: Project context models (Project, Task, TimeLog)
// - finance.go: Finance context models (Client, Invoice, Expense, RecurringInvoice)
// - sequence.go: Per-company document number counters
//
// The User and Company aggregates persist directly and are not mirrored here.
package models
