// Package pagesift provides adaptive structured-data extraction from
// arbitrary web pages. Given rendered markup it classifies the page into
// one of a small set of structural shapes (table, repeating-record list,
// or single article), extracts records without site-specific rules, and
// drives a bounded multi-page crawl with pagination discovery.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// rod/, sqlite/); crawl orchestration lives in crawl/.
package pagesift
