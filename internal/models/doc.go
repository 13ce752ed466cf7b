// Package models defines the entities persisted by bannerkeeper: accounts,
// banners, audit entries and flagged accounts, plus the value types the
// services exchange with the presentation layer.
package models
