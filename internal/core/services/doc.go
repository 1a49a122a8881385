// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// PortalStore is the heart of the application: it owns the portal
// document, gates appends on edit mode and required fields, and mirrors
// every accepted append to the durable slot.
package services
