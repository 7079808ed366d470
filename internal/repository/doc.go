// Package repository contains the persistence layer. Subpackages are
// organized by backing store; postgres holds the relational
// repositories for all business entities and the audit log.
package repository
