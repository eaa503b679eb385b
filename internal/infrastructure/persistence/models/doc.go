// Package models contains the GORM persistence models for the passbook tables.
// They stay separate from the ledger domain types so the engine carries no ORM tags.
//
// Structure:
//   - base.go: BaseModel shared by uuid-keyed rows
//   - ledger.go: ledger accounts, production challans and payment vouchers with
//     their ToDomain/FromDomain mappers
package models
