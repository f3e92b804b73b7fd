// Package siteaudit audits a web page across independent signal categories
// (performance, structured data, geo targeting, on-page SEO, social metadata,
// security headers, accessibility, link health) and reduces them into a single
// weighted score plus per-category diagnostics.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., http/, sqlite/, audit/).
package siteaudit
