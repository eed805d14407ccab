// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (registry tables, keys, wire messages, errors) and
// contracts (interfaces) only.
package domain
